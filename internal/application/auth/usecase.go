package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
	"github.com/jhoicas/MultiTienda-api/pkg/jwt"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y sesión actual.
type AuthUseCase struct {
	userRepo repository.UserRepository
	shops    ports.ShopStore
	revoked  repository.TokenRevocationStore
	jwtCfg   JWTConfig
	log      *logger.Logger
	hashCost int
	nowFn    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	shops ports.ShopStore,
	revoked repository.TokenRevocationStore,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &AuthUseCase{
		userRepo: userRepo,
		shops:    shops,
		revoked:  revoked,
		jwtCfg:   jwtCfg,
		log:      log.Named("auth"),
		hashCost: bcrypt.DefaultCost,
		nowFn:    time.Now,
	}
}

// SignUp crea un propietario: hashea password con bcrypt y persiste. Con ShopName crea
// también su primera tienda, que queda activa.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.Invalid("email", "es obligatorio")
	}
	if len(in.Password) < 8 {
		return nil, domain.Invalid("password", "debe tener al menos 8 caracteres")
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         entity.RoleOwner,
		CreatedAt:    uc.nowFn(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	var shop *dto.ShopResponse
	if name := strings.TrimSpace(in.ShopName); name != "" {
		shop, err = uc.shops.CreateShop(ctx, ports.Scope{UserID: user.ID, Token: token}, dto.CreateShopRequest{Name: name})
		if err != nil {
			return nil, err
		}
	}
	uc.log.Info().Str("user_id", user.ID).Bool("with_shop", shop != nil).Msg("usuario registrado")
	return &dto.AuthResponse{User: dto.ToUserResponse(user), Shop: shop, Token: token}, nil
}

// SignIn verifica email/password y emite un JWT junto con la tienda activa.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.SignInRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	shop, err := uc.activeShop(ctx, ports.Scope{UserID: user.ID, Token: token})
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: dto.ToUserResponse(user), Shop: shop, Token: token}, nil
}

// SignOut revoca el token hasta su vencimiento.
func (uc *AuthUseCase) SignOut(ctx context.Context, token string) error {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	if claims.ID == "" {
		return nil
	}
	return uc.revoked.Revoke(ctx, claims.ID, claims.ExpiresAtTime())
}

// Authenticate valida firma, vencimiento y revocación. Lo usa el middleware.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.ID != "" {
		revoked, err := uc.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domain.ErrUnauthorized
		}
	}
	return claims, nil
}

// Me usuario autenticado y su tienda activa (nil si aún no tiene tiendas).
func (uc *AuthUseCase) Me(ctx context.Context, scope ports.Scope) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	shop, err := uc.activeShop(ctx, scope)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{User: dto.ToUserResponse(user), Shop: shop}, nil
}

func (uc *AuthUseCase) activeShop(ctx context.Context, scope ports.Scope) (*dto.ShopResponse, error) {
	shop, err := uc.shops.ResolveShop(ctx, scope, "")
	if errors.Is(err, domain.ErrNoActiveShop) {
		return nil, nil
	}
	return shop, err
}

func (uc *AuthUseCase) issue(user *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
