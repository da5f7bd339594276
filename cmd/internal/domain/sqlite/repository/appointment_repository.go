package repository

import (
	"errors"

	"embtrack/cmd/internal/domain/entity"
	"gorm.io/gorm"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

func (a *DefaultAppointmentRepository) FindByID(id int) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.First(&appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appt, err
}

func (a *DefaultAppointmentRepository) FindAll() ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) Save(appointment *entity.Appointment) error {
	return a.db.Save(appointment).Error
}

// SaveAll inserts a batch of records in one transaction, so a failed
// restore leaves the store exactly as it was.
func (a *DefaultAppointmentRepository) SaveAll(appointments []*entity.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}
	return a.db.Transaction(func(tx *gorm.DB) error {
		for _, appt := range appointments {
			if err := tx.Create(appt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *DefaultAppointmentRepository) Delete(appointment *entity.Appointment) error {
	return a.db.Delete(appointment).Error
}

func (a *DefaultAppointmentRepository) DeleteAll() error {
	return a.db.Where("1 = 1").Delete(&entity.Appointment{}).Error
}
