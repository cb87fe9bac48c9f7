package voting

import "errors"

var (
	ErrNoActiveSession      = errors.New("no active voting session")
	ErrSessionNotFound      = errors.New("voting session not found")
	ErrSessionClosed        = errors.New("voting session is closed")
	ErrCampaignNotInSession = errors.New("campaign is not part of the voting session")
	ErrMissingUser          = errors.New("user id is required")
)
