package transport

import "time"

type RegisterRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"mot_de_passe"`
	Nom        string `json:"nom"`
	Role       string `json:"role"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"mot_de_passe"`
}

// ProductRequest is shared by create and update. Pointers distinguish
// "field absent" from a zero value, which matters for partial updates.
type ProductRequest struct {
	Nom           string   `json:"nom"`
	Description   *string  `json:"description"`
	Categorie     string   `json:"categorie"`
	Prix          *float64 `json:"prix"`
	QuantiteStock *int     `json:"quantite_stock"`
}

type OrderItemRequest struct {
	ProduitID uint `json:"produit_id"`
	Quantite  int  `json:"quantite"`
}

type CreateOrderRequest struct {
	AdresseLivraison string             `json:"adresse_livraison"`
	Items            []OrderItemRequest `json:"items"`
}

type StatusRequest struct {
	Statut *string `json:"statut"`
}

type OrderResponse struct {
	ID               uint      `json:"id"`
	UtilisateurID    uint      `json:"utilisateur_id"`
	Utilisateur      string    `json:"utilisateur"`
	DateCommande     time.Time `json:"date_commande"`
	AdresseLivraison string    `json:"adresse_livraison"`
	Statut           string    `json:"statut"`
	Total            float64   `json:"total"`
}

type OrderLineResponse struct {
	ID           uint    `json:"id"`
	CommandeID   uint    `json:"commande_id"`
	ProduitID    uint    `json:"produit_id"`
	Produit      string  `json:"produit"`
	Quantite     int     `json:"quantite"`
	PrixUnitaire float64 `json:"prix_unitaire"`
	PrixTotal    float64 `json:"prix_total"`
}
