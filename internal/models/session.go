package models

type SessionRequestBody struct {
	Token string `json:"token" yaml:"token"`
}

type SessionStatus struct {
	Authenticated bool `json:"authenticated" yaml:"authenticated"`
}
