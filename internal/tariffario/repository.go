// internal/tariffario/repository.go
package tariffario

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Crea(v *VoceTariffario) error {
	return r.DB.Create(v).Error
}

func (r *Repository) ListaTutte() ([]VoceTariffario, error) {
	var voci []VoceTariffario
	err := r.DB.Order("categoria, descrizione").Find(&voci).Error
	return voci, err
}

func (r *Repository) TrovaPorID(id uint) (*VoceTariffario, error) {
	var v VoceTariffario
	if err := r.DB.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) Aggiorna(v *VoceTariffario) error {
	return r.DB.Save(v).Error
}

func (r *Repository) Elimina(v *VoceTariffario) error {
	return r.DB.Delete(v).Error
}
