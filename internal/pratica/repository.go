// internal/pratica/repository.go
package pratica

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salva(db *gorm.DB, p *Pratica) error
	ListaTutte(db *gorm.DB) ([]Pratica, error)
	TrovaPorID(db *gorm.DB, id uint) (*Pratica, error)
	Elimina(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salva(db *gorm.DB, p *Pratica) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) ListaTutte(db *gorm.DB) ([]Pratica, error) {
	var pratiche []Pratica
	err := db.Order("created_at DESC").Find(&pratiche).Error
	return pratiche, err
}

func (r *repositoryImpl) TrovaPorID(db *gorm.DB, id uint) (*Pratica, error) {
	var p Pratica
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) Elimina(db *gorm.DB, id uint) error {
	return db.Delete(&Pratica{}, id).Error
}
