package service

import (
	"time"

	"climate_edu_backend/internal/config"
	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/repository"
	"climate_edu_backend/internal/util"
)

// UserService 用户档案同步与令牌签发。身份认证在平台网关完成，
// 这里只负责把通过认证的身份换成本服务的 JWT。
type UserService struct {
	UserRepo *repository.UserRepository
	Config   *config.Config
}

func NewUserService(userRepo *repository.UserRepository, cfg *config.Config) *UserService {
	return &UserService{UserRepo: userRepo, Config: cfg}
}

type TokenResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// ExchangeToken 按邮箱同步用户档案并签发访问令牌，首次出现时建档
func (s *UserService) ExchangeToken(email, name string) (*TokenResult, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err == util.ErrUserNotFound {
		user = &model.User{
			Name:     name,
			Email:    email,
			Role:     model.Student,
			LastSeen: time.Now(),
		}
		if err := s.UserRepo.Create(user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &TokenResult{Token: token, User: user}, nil
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}
