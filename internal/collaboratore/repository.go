package collaboratore

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salva(db *gorm.DB, c *Collaboratore) error
	ListaTutti(db *gorm.DB) ([]Collaboratore, error)
	TrovaPorID(db *gorm.DB, id uint) (*Collaboratore, error)
	Aggiorna(db *gorm.DB, id uint, nuovi *Collaboratore) error
	Elimina(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salva(db *gorm.DB, c *Collaboratore) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) ListaTutti(db *gorm.DB) ([]Collaboratore, error) {
	var collaboratori []Collaboratore
	err := db.Order("cognome, nome").Find(&collaboratori).Error
	return collaboratori, err
}

func (r *repositoryImpl) TrovaPorID(db *gorm.DB, id uint) (*Collaboratore, error) {
	var c Collaboratore
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Aggiorna(db *gorm.DB, id uint, nuovi *Collaboratore) error {
	var esistente Collaboratore
	if err := db.First(&esistente, id).Error; err != nil {
		return err
	}

	esistente.Nome = nuovi.Nome
	esistente.Cognome = nuovi.Cognome
	esistente.Email = nuovi.Email
	esistente.Telefono = nuovi.Telefono
	esistente.CodiceFiscale = nuovi.CodiceFiscale
	esistente.PartitaIVA = nuovi.PartitaIVA
	esistente.Qualifica = nuovi.Qualifica
	esistente.Firmatario = nuovi.Firmatario

	return db.Save(&esistente).Error
}

func (r *repositoryImpl) Elimina(db *gorm.DB, id uint) error {
	return db.Delete(&Collaboratore{}, id).Error
}
