package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"seguradora/internal/apierror"
	"seguradora/internal/config"
	"seguradora/internal/dto"
	"seguradora/internal/model"
	"seguradora/internal/repository"
	"seguradora/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Autenticar(ctx context.Context, username, senha string) (*dto.Sessao, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (bool, error)
	EditarUsuario(ctx context.Context, username string, req dto.EditarUsuarioRequest) (bool, error)
	ExcluirUsuario(ctx context.Context, username string) (bool, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
}

type authService struct {
	repo     repository.UsuarioRepository
	clientes repository.ClienteRepository
	cfg      *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, clientes repository.ClienteRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, clientes: clientes, cfg: cfg}
}

// HashPassword returns a salted bcrypt hash. Costs below bcrypt.MinCost fall
// back to bcrypt.DefaultCost.
func HashPassword(senha string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(senha, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

// Autenticar never tells an unknown user from a wrong password. The inactive
// message is only given to someone who knows the password.
func (s *authService) Autenticar(ctx context.Context, username, senha string) (*dto.Sessao, error) {
	username = strings.TrimSpace(username)
	if username == "" || senha == "" {
		return nil, ErrCredenciaisVazias
	}
	user, err := s.repo.FindByUsername(ctx, username)
	if repository.IsNotFound(err) {
		return nil, ErrCredenciaisInvalidas
	}
	if err != nil {
		return nil, fmt.Errorf("buscar usuário: %w", err)
	}
	if !CheckPassword(senha, user.PasswordHash) {
		return nil, ErrCredenciaisInvalidas
	}
	if !user.Ativo {
		return nil, ErrUsuarioInativo
	}
	return &dto.Sessao{Username: user.Username, Perfil: user.Perfil}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	sessao, err := s.Autenticar(ctx, req.Username, req.Senha)
	if err != nil {
		return nil, err
	}
	token, err := s.generateToken(sessao, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		Sessao:      *sessao,
	}, nil
}

// CriarUsuario enforces that only "cliente" users carry a CPF, and that the
// CPF belongs to a registered client.
func (s *authService) CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (bool, error) {
	if err := validation.Struct(req); err != nil {
		return false, err
	}
	cpf, err := s.resolverCPF(ctx, req.Perfil, req.ClienteCPF)
	if err != nil {
		return false, err
	}
	hash, err := HashPassword(req.Senha, s.cfg.BcryptCost)
	if err != nil {
		return false, err
	}
	user := &model.Usuario{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Perfil:       req.Perfil,
		ClienteCPF:   cpf,
		Ativo:        true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return false, apierror.Conflict("Usuário já existe.", err)
		}
		return false, err
	}
	return true, nil
}

// EditarUsuario returns false when the user does not exist or nothing changed.
func (s *authService) EditarUsuario(ctx context.Context, username string, req dto.EditarUsuarioRequest) (bool, error) {
	if err := validation.Struct(req); err != nil {
		return false, err
	}
	user, err := s.repo.FindByUsername(ctx, username)
	if repository.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("buscar usuário: %w", err)
	}

	campos := map[string]any{}
	perfil := user.Perfil
	if req.Perfil != nil {
		perfil = *req.Perfil
		campos["perfil"] = perfil
	}
	if req.Perfil != nil || req.ClienteCPF != nil {
		atual := req.ClienteCPF
		if atual == nil {
			atual = user.ClienteCPF
		}
		cpf, err := s.resolverCPF(ctx, perfil, atual)
		if err != nil {
			return false, err
		}
		campos["cliente_cpf"] = cpf
	}
	if req.Senha != nil {
		hash, err := HashPassword(*req.Senha, s.cfg.BcryptCost)
		if err != nil {
			return false, err
		}
		campos["password_hash"] = hash
	}
	if req.Ativo != nil {
		campos["ativo"] = *req.Ativo
	}
	return s.repo.Update(ctx, username, campos)
}

func (s *authService) ExcluirUsuario(ctx context.Context, username string) (bool, error) {
	return s.repo.Delete(ctx, username)
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i, u := range users {
		resp[i] = dto.UsuarioResponse{
			ID: u.ID, Username: u.Username, Perfil: u.Perfil,
			ClienteCPF: u.ClienteCPF, Ativo: u.Ativo,
		}
	}
	return resp, nil
}

// resolverCPF returns the CPF to store for a user of the given profile: the
// cleaned, existing client CPF for "cliente", nil for everybody else.
func (s *authService) resolverCPF(ctx context.Context, perfil string, cpf *string) (*string, error) {
	if perfil != model.PerfilCliente {
		return nil, nil
	}
	if cpf == nil || strings.TrimSpace(*cpf) == "" {
		return nil, apierror.Invalid("cliente_cpf", "Perfil cliente exige o CPF de um cliente.")
	}
	limpo := validation.LimparCPF(*cpf)
	if _, err := s.clientes.FindByCPF(ctx, limpo); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCPFInexistente
		}
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	return &limpo, nil
}

func (s *authService) generateToken(sessao *dto.Sessao, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": sessao.Username,
		"perfil":   sessao.Perfil,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// SeedAdmin makes sure an active admin with the given credentials exists.
// An existing user is promoted, reactivated and gets the new password. It
// reports whether the user was created.
func SeedAdmin(ctx context.Context, repo repository.UsuarioRepository, username, senha string, cost int) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || senha == "" {
		return false, ErrCredenciaisVazias
	}
	hash, err := HashPassword(senha, cost)
	if err != nil {
		return false, err
	}
	if _, err := repo.FindByUsername(ctx, username); err == nil {
		_, err := repo.Update(ctx, username, map[string]any{
			"password_hash": hash,
			"perfil":        model.PerfilAdmin,
			"cliente_cpf":   nil,
			"ativo":         true,
		})
		return false, err
	} else if !repository.IsNotFound(err) {
		return false, fmt.Errorf("buscar usuário: %w", err)
	}
	err = repo.Create(ctx, &model.Usuario{
		Username:     username,
		PasswordHash: hash,
		Perfil:       model.PerfilAdmin,
		Ativo:        true,
	})
	return err == nil, err
}
