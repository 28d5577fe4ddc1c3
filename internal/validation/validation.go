// Package validation holds the pure payload checks. Every function runs all
// of its rules and accumulates the failures, an empty map means valid.
package validation

import (
	"fmt"

	"github.com/digimarket/digimarket/internal/transport"
)

type Errors map[string]string

func Register(req transport.RegisterRequest) Errors {
	errs := Errors{}

	if req.Email == "" {
		errs["email"] = "L'email est requis"
	}
	if len(req.MotDePasse) < 6 {
		errs["mot_de_passe"] = "Le mot de passe doit contenir au moins 6 caractères"
	}
	if req.Nom == "" {
		errs["nom"] = "Le nom est requis"
	}

	return errs
}

func Login(req transport.LoginRequest) Errors {
	errs := Errors{}

	if req.Email == "" {
		errs["email"] = "L'email est requis"
	}
	if req.MotDePasse == "" {
		errs["mot_de_passe"] = "Le mot de passe est requis"
	}

	return errs
}

func Product(req transport.ProductRequest) Errors {
	errs := Errors{}

	if req.Nom == "" {
		errs["nom"] = "Le nom du produit est requis"
	}
	if req.Prix == nil || *req.Prix <= 0 {
		errs["prix"] = "Le prix doit être un nombre positif"
	}
	if req.Categorie == "" {
		errs["categorie"] = "La catégorie est requise"
	}
	if req.QuantiteStock != nil && *req.QuantiteStock < 0 {
		errs["quantite_stock"] = "La quantité en stock doit être un nombre entier positif ou nul"
	}

	return errs
}

func Order(req transport.CreateOrderRequest) Errors {
	errs := Errors{}

	if req.AdresseLivraison == "" {
		errs["adresse_livraison"] = "L'adresse de livraison est requise"
	}
	if len(req.Items) == 0 {
		errs["items"] = "Au moins un article est requis dans la commande"
		return errs
	}
	for i, item := range req.Items {
		if item.ProduitID == 0 {
			errs[fmt.Sprintf("items[%d].produit_id", i)] = "L'identifiant du produit est requis"
		}
		if item.Quantite <= 0 {
			errs[fmt.Sprintf("items[%d].quantite", i)] = "La quantité doit être un nombre entier positif"
		}
	}

	return errs
}
