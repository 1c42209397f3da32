package application

import (
	"context"

	catalog "github.com/wyfcoding/eshop/internal/catalog/domain"
	"github.com/wyfcoding/eshop/internal/cart/domain"
	"github.com/wyfcoding/eshop/pkg/errs"
	"github.com/wyfcoding/pkg/logging"
)

// ProductReader is the slice of the catalog the cart validates against.
// Every mutation re-reads live product state; cached cart contents are never
// trusted for availability or stock.
type ProductReader interface {
	GetByID(ctx context.Context, id uint) (*catalog.Product, error)
}

// UserChecker guards lazy cart creation: a cart may only be created for an
// existing user.
type UserChecker interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

type CartService struct {
	carts    domain.CartRepository
	products ProductReader
	users    UserChecker
}

func NewCartService(carts domain.CartRepository, products ProductReader, users UserChecker) *CartService {
	return &CartService{carts: carts, products: products, users: users}
}

// GetCart returns the user's cart, or a transient empty cart when none
// exists. Reading never creates a cart row.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*domain.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	return cart, nil
}

// AddItem puts quantity units of a product into the cart. Quantities for a
// product already in the cart are additive, and the combined quantity is
// re-checked against stock.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*domain.Cart, error) {
	var result *domain.Cart
	err := s.carts.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := s.carts.GetByUserID(txCtx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			exists, err := s.users.ExistsByID(txCtx, userID)
			if err != nil {
				return err
			}
			if !exists {
				return errs.NotFound(errs.CodeUserNotFound, "User not found")
			}
			cart = &domain.Cart{UserID: userID}
			if err := s.carts.Create(txCtx, cart); err != nil {
				return err
			}
			logging.Info(txCtx, "cart created", "user_id", userID, "cart_id", cart.ID)
		}

		product, err := s.products.GetByID(txCtx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return errs.NotFound(errs.CodeProductNotFound, "Product not found")
		}
		if !product.Active {
			return errs.Business(errs.CodeProductNotAvailable, "Product is not available")
		}
		if !product.HasStock(quantity) {
			return errs.Business(errs.CodeInsufficientStock, "Insufficient stock")
		}

		if existing := cart.ItemOfProduct(productID); existing != nil {
			merged := existing.Quantity + quantity
			if !product.HasStock(merged) {
				return errs.Business(errs.CodeInsufficientStock, "Insufficient stock")
			}
			existing.Quantity = merged
			if err := s.carts.SaveItem(txCtx, existing); err != nil {
				return err
			}
		} else {
			item := &domain.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			if err := s.carts.SaveItem(txCtx, item); err != nil {
				return err
			}
		}

		result, err = s.carts.GetByUserID(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateItem sets a cart line to an absolute quantity; zero or negative
// deletes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*domain.Cart, error) {
	var result *domain.Cart
	err := s.carts.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := s.carts.GetByUserID(txCtx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return errs.NotFound(errs.CodeCartNotFound, "Cart not found")
		}

		item, err := s.carts.GetItemByID(txCtx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return errs.NotFound(errs.CodeCartItemNotFound, "Cart item not found")
		}
		if item.CartID != cart.ID {
			return errs.Business(errs.CodeCartItemDoesNotBelong, "Cart item does not belong to user's cart")
		}

		if quantity <= 0 {
			if err := s.carts.DeleteItem(txCtx, item.ID); err != nil {
				return err
			}
		} else {
			product, err := s.products.GetByID(txCtx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return errs.NotFound(errs.CodeProductNotFound, "Product not found")
			}
			if !product.HasStock(quantity) {
				return errs.Business(errs.CodeInsufficientStock, "Insufficient stock")
			}
			item.Quantity = quantity
			if err := s.carts.SaveItem(txCtx, item); err != nil {
				return err
			}
		}

		result, err = s.carts.GetByUserID(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveItem drops a cart line unconditionally; removal needs no stock check.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (*domain.Cart, error) {
	var result *domain.Cart
	err := s.carts.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := s.carts.GetByUserID(txCtx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return errs.NotFound(errs.CodeCartNotFound, "Cart not found")
		}

		item := cart.ItemByID(itemID)
		if item == nil {
			return errs.NotFound(errs.CodeCartItemNotFound, "Cart item not found")
		}
		if err := s.carts.DeleteItem(txCtx, item.ID); err != nil {
			return err
		}

		result, err = s.carts.GetByUserID(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ClearCart deletes every item; the cart row itself persists empty.
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return errs.NotFound(errs.CodeCartNotFound, "Cart not found")
	}
	return s.carts.DeleteItems(ctx, cart.ID)
}
