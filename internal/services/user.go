package services

import (
	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type UpdateProfileRequest struct {
	Email             *string  `json:"email" validate:"omitempty,email"`
	Phone             *string  `json:"phone"`
	EmergencyContacts []string `json:"emergencyContacts"`
	AssignedBikes     []string `json:"assignedBikes"`
}

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetUsers() ([]*models.User, error) {
	return s.users.FindAll()
}

func (s *UserService) GetUser(id string) (*models.User, error) {
	return s.users.FindByID(id)
}

// UpdateProfile applies only the fields present in the request. Nil
// pointers and nil slices mean "leave unchanged"; credentials and role
// are never writable here.
func (s *UserService) UpdateProfile(id string, req UpdateProfileRequest) (*models.User, error) {
	fields := bson.M{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.EmergencyContacts != nil {
		fields["emergency_contacts"] = req.EmergencyContacts
	}
	if req.AssignedBikes != nil {
		fields["assigned_bikes"] = req.AssignedBikes
	}

	if len(fields) == 0 {
		return s.users.FindByID(id)
	}

	return s.users.UpdateProfile(id, fields)
}
