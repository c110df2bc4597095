package usecase

import (
	"localmarket/internal/data/repository"
	"localmarket/pkg/mail"
	"localmarket/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Catalog  CatalogService
	Cart     CartService
	Wishlist WishlistService
	Order    OrderService
}

func NewService(repo *repository.Repository, mailer mail.Mailer, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, mailer, config, log),
		User:     NewUserService(repo.User, log),
		Catalog:  NewCatalogService(repo, log),
		Cart:     NewCartService(repo, log),
		Wishlist: NewWishlistService(repo, log),
		Order:    NewOrderService(repo, log),
	}
}
