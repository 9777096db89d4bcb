package services

import (
	"strings"
	"time"

	"vms-backend/internal/models"
	"vms-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes. Insertion order is preserved so pagination
// tests are deterministic.

type fakeUserStore struct {
	order []string
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (s *fakeUserStore) Create(user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.order = append(s.order, user.ID.Hex())
	s.users[user.ID.Hex()] = user
	return user, nil
}

func (s *fakeUserStore) FindByID(id string) (*models.User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	for _, id := range s.order {
		if s.users[id].Email == email {
			return s.users[id], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) FindAll() ([]*models.User, error) {
	out := make([]*models.User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.users[id])
	}
	return out, nil
}

func (s *fakeUserStore) Update(id string, user *models.User) (*models.User, error) {
	if _, ok := s.users[id]; !ok {
		return nil, repository.ErrNotFound
	}
	s.users[id] = user
	return user, nil
}

func (s *fakeUserStore) UpdatePasswordResetToken(email, hashedToken string, expiry time.Time) error {
	user, err := s.FindByEmail(email)
	if err != nil {
		return err
	}
	user.PasswordResetToken = hashedToken
	user.PasswordResetExpiry = &expiry
	return nil
}

func (s *fakeUserStore) ClearPasswordResetToken(id string) error {
	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordResetToken = ""
	user.PasswordResetExpiry = nil
	return nil
}

type fakeVehicleStore struct {
	order    []string
	vehicles map[string]*models.Vehicle
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{vehicles: map[string]*models.Vehicle{}}
}

func (s *fakeVehicleStore) Create(vehicle *models.Vehicle) (*models.Vehicle, error) {
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	s.order = append(s.order, vehicle.ID.Hex())
	s.vehicles[vehicle.ID.Hex()] = vehicle
	return vehicle, nil
}

func (s *fakeVehicleStore) FindByID(id string) (*models.Vehicle, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	vehicle, ok := s.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return vehicle, nil
}

func (s *fakeVehicleStore) FindByPlateNumber(plateNumber string) (*models.Vehicle, error) {
	for _, id := range s.order {
		if s.vehicles[id].PlateNumber == plateNumber {
			return s.vehicles[id], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeVehicleStore) FindAllWithModel() ([]*models.VehicleWithModel, error) {
	out := make([]*models.VehicleWithModel, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, &models.VehicleWithModel{Vehicle: *s.vehicles[id]})
	}
	return out, nil
}

func (s *fakeVehicleStore) FindPageWithModel(skip, limit int64) ([]*models.VehicleWithModel, int64, error) {
	all, _ := s.FindAllWithModel()
	total := int64(len(all))
	if skip >= total {
		return []*models.VehicleWithModel{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (s *fakeVehicleStore) Search(plateNumber, color, modelID string) ([]*models.Vehicle, error) {
	var modelOID primitive.ObjectID
	if modelID != "" {
		oid, err := primitive.ObjectIDFromHex(modelID)
		if err != nil {
			return nil, repository.ErrInvalidID
		}
		modelOID = oid
	}

	var out []*models.Vehicle
	for _, id := range s.order {
		v := s.vehicles[id]
		if plateNumber != "" && !strings.Contains(strings.ToLower(v.PlateNumber), strings.ToLower(plateNumber)) {
			continue
		}
		if color != "" && !strings.Contains(strings.ToLower(v.Color), strings.ToLower(color)) {
			continue
		}
		if modelID != "" && v.ModelID != modelOID {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *fakeVehicleStore) Update(id string, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if _, ok := s.vehicles[id]; !ok {
		return nil, repository.ErrNotFound
	}
	s.vehicles[id] = vehicle
	return vehicle, nil
}

func (s *fakeVehicleStore) Delete(id string) error {
	if _, ok := s.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.vehicles, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeVehicleStore) CountByModelID(modelID primitive.ObjectID) (int64, error) {
	var count int64
	for _, id := range s.order {
		if s.vehicles[id].ModelID == modelID {
			count++
		}
	}
	return count, nil
}

type fakeVehicleModelStore struct {
	order  []string
	models map[string]*models.VehicleModel
}

func newFakeVehicleModelStore() *fakeVehicleModelStore {
	return &fakeVehicleModelStore{models: map[string]*models.VehicleModel{}}
}

func (s *fakeVehicleModelStore) Create(model *models.VehicleModel) (*models.VehicleModel, error) {
	if model.ID.IsZero() {
		model.ID = primitive.NewObjectID()
	}
	s.order = append(s.order, model.ID.Hex())
	s.models[model.ID.Hex()] = model
	return model, nil
}

func (s *fakeVehicleModelStore) FindByID(id string) (*models.VehicleModel, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	model, ok := s.models[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return model, nil
}

func (s *fakeVehicleModelStore) FindAll() ([]*models.VehicleModel, error) {
	out := make([]*models.VehicleModel, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.models[id])
	}
	return out, nil
}

func (s *fakeVehicleModelStore) FindPage(skip, limit int64) ([]*models.VehicleModel, int64, error) {
	all, _ := s.FindAll()
	total := int64(len(all))
	if skip >= total {
		return []*models.VehicleModel{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (s *fakeVehicleModelStore) Search(name, brand string) ([]*models.VehicleModel, error) {
	var out []*models.VehicleModel
	for _, id := range s.order {
		m := s.models[id]
		if name != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(name)) {
			continue
		}
		if brand != "" && !strings.Contains(strings.ToLower(m.Brand), strings.ToLower(brand)) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *fakeVehicleModelStore) Update(id string, model *models.VehicleModel) (*models.VehicleModel, error) {
	if _, ok := s.models[id]; !ok {
		return nil, repository.ErrNotFound
	}
	s.models[id] = model
	return model, nil
}

func (s *fakeVehicleModelStore) Delete(id string) error {
	if _, ok := s.models[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.models, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeActionStore struct {
	order   []string
	actions map[string]*models.Action
}

func newFakeActionStore() *fakeActionStore {
	return &fakeActionStore{actions: map[string]*models.Action{}}
}

func (s *fakeActionStore) Create(action *models.Action) (*models.Action, error) {
	if action.ID.IsZero() {
		action.ID = primitive.NewObjectID()
	}
	s.order = append(s.order, action.ID.Hex())
	s.actions[action.ID.Hex()] = action
	return action, nil
}

func (s *fakeActionStore) FindByID(id string) (*models.Action, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	action, ok := s.actions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return action, nil
}

func (s *fakeActionStore) FindAllWithRelations() ([]*models.ActionWithRelations, error) {
	out := make([]*models.ActionWithRelations, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, &models.ActionWithRelations{Action: *s.actions[id]})
	}
	return out, nil
}

func (s *fakeActionStore) Update(id string, action *models.Action) (*models.Action, error) {
	if _, ok := s.actions[id]; !ok {
		return nil, repository.ErrNotFound
	}
	s.actions[id] = action
	return action, nil
}

func (s *fakeActionStore) Delete(id string) error {
	if _, ok := s.actions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.actions, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
