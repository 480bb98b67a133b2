package storage

import "skool-scraper/models"

// ProfileSink is the interface any final-dataset storage backend must satisfy.
type ProfileSink interface {
	Write(profiles []*models.CommunityProfile) error
	FetchAll() ([]*models.CommunityProfile, error)
	Close() error
}
