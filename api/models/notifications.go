package models

type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}
