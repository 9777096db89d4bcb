package services

import (
	"time"

	"vms-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userStore UserStore
}

func NewUserService(userStore UserStore) *UserService {
	return &UserService{
		userStore: userStore,
	}
}

type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password" validate:"required,min=6"`
}

// CreateUser registers a new account. Self-registered users always get the
// USER role; promotion to ADMIN is out of band.
func (s *UserService) CreateUser(req *CreateUserRequest) (*models.User, error) {
	existingUser, _ := s.userStore.FindByEmail(req.Email)
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  string(hashedPassword),
		Role:      models.RoleUser,
		Verified:  false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	return s.userStore.Create(user)
}

func (s *UserService) GetAllUsers() ([]*models.User, error) {
	return s.userStore.FindAll()
}

func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userStore.FindByID(id)
}
