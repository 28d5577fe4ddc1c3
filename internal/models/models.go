package models

import (
	"time"
)

const (
	StatutEnAttente = "en_attente"
	StatutValidee   = "validée"
	StatutExpediee  = "expédiée"
	StatutAnnulee   = "annulée"
)

// ValidStatut reports whether s is one of the four order statuses. Any of
// them is accepted from any current status, there is no transition table.
func ValidStatut(s string) bool {
	switch s {
	case StatutEnAttente, StatutValidee, StatutExpediee, StatutAnnulee:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Nom          string    `gorm:"not null"                 json:"nom"`
	Role         string    `gorm:"not null;default:client"  json:"role"`
	DateCreation time.Time `gorm:"not null"                 json:"date_creation"`
}

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom           string    `gorm:"not null"                 json:"nom"`
	Description   string    `json:"description"`
	Categorie     string    `gorm:"not null;index"           json:"categorie"`
	Prix          float64   `gorm:"not null"                 json:"prix"`
	QuantiteStock int       `gorm:"not null;default:0;check:quantite_stock >= 0" json:"quantite_stock"`
	DateCreation  time.Time `gorm:"not null"                 json:"date_creation"`
}

type Order struct {
	ID               uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UtilisateurID    uint        `gorm:"index;not null"           json:"utilisateur_id"`
	DateCommande     time.Time   `gorm:"not null"                 json:"date_commande"`
	AdresseLivraison string      `gorm:"not null"                 json:"adresse_livraison"`
	Statut           string      `gorm:"not null;default:en_attente" json:"statut"`
	Lignes           []OrderLine `gorm:"foreignKey:CommandeID;constraint:OnDelete:CASCADE" json:"-"`
}

// OrderLine freezes the product price at order time. PrixUnitaire is never
// touched again, whatever happens to the product afterwards.
type OrderLine struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CommandeID   uint    `gorm:"index;not null"           json:"commande_id"`
	ProduitID    uint    `gorm:"not null"                 json:"produit_id"`
	Quantite     int     `gorm:"not null;check:quantite > 0" json:"quantite"`
	PrixUnitaire float64 `gorm:"not null"                 json:"prix_unitaire"`
}

func (l OrderLine) PrixTotal() float64 {
	return l.PrixUnitaire * float64(l.Quantite)
}

// OrderTotal recomputes an order's total from its lines. The total is never
// stored, so it cannot drift from the lines.
func OrderTotal(lignes []OrderLine) float64 {
	var total float64
	for _, l := range lignes {
		total += l.PrixTotal()
	}
	return total
}
