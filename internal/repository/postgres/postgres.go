package postgres

import (
	"database/sql"

	"helpmatch-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.RequestRepository
	repository.OfferRepository
	repository.ChatRepository
	repository.RatingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		UserRepository:    NewUserRepository(db),
		RequestRepository: NewRequestRepository(db),
		OfferRepository:   NewOfferRepository(db),
		ChatRepository:    NewChatRepository(db),
		RatingRepository:  NewRatingRepository(db),
	}
}
