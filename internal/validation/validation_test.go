package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/digimarket/digimarket/internal/transport"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestRegisterAccumulatesAllErrors(t *testing.T) {
	errs := Register(transport.RegisterRequest{})
	require.Len(t, errs, 3)
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "mot_de_passe")
	require.Contains(t, errs, "nom")
}

func TestRegisterShortPassword(t *testing.T) {
	errs := Register(transport.RegisterRequest{
		Email:      "a@b.fr",
		MotDePasse: "12345",
		Nom:        "Alice",
	})
	require.Len(t, errs, 1)
	require.Equal(t, "Le mot de passe doit contenir au moins 6 caractères", errs["mot_de_passe"])

	errs = Register(transport.RegisterRequest{
		Email:      "a@b.fr",
		MotDePasse: "123456",
		Nom:        "Alice",
	})
	require.Empty(t, errs)
}

func TestLoginHasNoLengthRule(t *testing.T) {
	errs := Login(transport.LoginRequest{Email: "a@b.fr", MotDePasse: "x"})
	require.Empty(t, errs)

	errs = Login(transport.LoginRequest{})
	require.Len(t, errs, 2)
}

func TestProduct(t *testing.T) {
	errs := Product(transport.ProductRequest{})
	require.Contains(t, errs, "nom")
	require.Contains(t, errs, "prix")
	require.Contains(t, errs, "categorie")
	require.NotContains(t, errs, "quantite_stock")

	errs = Product(transport.ProductRequest{
		Nom:       "Clavier",
		Categorie: "informatique",
		Prix:      floatPtr(0),
	})
	require.Equal(t, "Le prix doit être un nombre positif", errs["prix"])

	errs = Product(transport.ProductRequest{
		Nom:           "Clavier",
		Categorie:     "informatique",
		Prix:          floatPtr(49.9),
		QuantiteStock: intPtr(-1),
	})
	require.Len(t, errs, 1)
	require.Contains(t, errs, "quantite_stock")

	errs = Product(transport.ProductRequest{
		Nom:           "Clavier",
		Categorie:     "informatique",
		Prix:          floatPtr(49.9),
		QuantiteStock: intPtr(0),
	})
	require.Empty(t, errs)
}

func TestOrderPerIndexKeys(t *testing.T) {
	errs := Order(transport.CreateOrderRequest{})
	require.Contains(t, errs, "adresse_livraison")
	require.Equal(t, "Au moins un article est requis dans la commande", errs["items"])

	errs = Order(transport.CreateOrderRequest{
		AdresseLivraison: "1 rue de la Paix",
		Items: []transport.OrderItemRequest{
			{ProduitID: 1, Quantite: 2},
			{ProduitID: 0, Quantite: 0},
		},
	})
	require.Len(t, errs, 2)
	require.Equal(t, "L'identifiant du produit est requis", errs["items[1].produit_id"])
	require.Equal(t, "La quantité doit être un nombre entier positif", errs["items[1].quantite"])
}
