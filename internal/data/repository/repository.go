package repository

import (
	"localmarket/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Role     RoleRepository
	OTP      OTPRepository
	Category CategoryRepository
	Brand    BrandRepository
	Product  ProductRepository
	Cart     CartRepository
	Wishlist WishlistRepository
	Order    OrderRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Role:     NewRoleRepository(db, log),
		OTP:      NewOTPRepository(db, log),
		Category: NewCategoryRepository(db, log),
		Brand:    NewBrandRepository(db, log),
		Product:  NewProductRepository(db, log),
		Cart:     NewCartRepository(db, log),
		Wishlist: NewWishlistRepository(db, log),
		Order:    NewOrderRepository(db, log),
	}
}
