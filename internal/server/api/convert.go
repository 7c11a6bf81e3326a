package api

import (
	domain "github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/shared/models"
)

func toAccount(a domain.Account) models.Account {
	return models.Account{
		ID:        a.ID,
		Email:     a.Email,
		TgID:      a.TgID,
		TgNick:    a.TgNick,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		IsActive:  a.IsActive,
		Phone:     a.Phone,
		Country:   a.Country,
		Image:     a.Image,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}

func toAd(a domain.Ad) models.Ad {
	return models.Ad{
		ID:          a.ID,
		Title:       a.Title,
		Price:       a.Price,
		Description: a.Description,
		Image:       a.Image,
		Author:      a.AuthorID,
		CreatedAt:   a.CreatedAt,
	}
}

func toReview(rv domain.Review) models.Review {
	return models.Review{
		ID:        rv.ID,
		Ad:        rv.AdID,
		Text:      rv.Text,
		Rating:    rv.Rating,
		Author:    rv.AuthorID,
		CreatedAt: rv.CreatedAt,
	}
}
