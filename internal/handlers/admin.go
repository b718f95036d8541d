package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/visualhealth/internal/models"
	"github.com/example/visualhealth/internal/store"
)

// AdminHandler exposes health checks and catalogue seeding.
type AdminHandler struct {
	store store.Store
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(s store.Store) *AdminHandler {
	return &AdminHandler{store: s}
}

// Root reports that the service is up.
func (h *AdminHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Visual Health E-commerce Backend running"})
}

// TestDatabase reports store connectivity and the collections present.
func (h *AdminHandler) TestDatabase(c *fiber.Ctx) error {
	names, err := h.store.CollectionNames(c.Context())
	if err != nil {
		return c.JSON(fiber.Map{
			"backend":     "running",
			"database":    "error: " + err.Error(),
			"collections": []string{},
		})
	}

	return c.JSON(fiber.Map{
		"backend":     "running",
		"database":    "connected",
		"collections": names,
	})
}

var seedFees = []models.DeliveryFee{
	{Wilaya: "Alger", Fee: 400},
	{Wilaya: "Oran", Fee: 500},
	{Wilaya: "Blida", Fee: 450},
	{Wilaya: "Constantine", Fee: 600},
	{Wilaya: "Tizi Ouzou", Fee: 550},
	{Wilaya: "Annaba", Fee: 600},
	{Wilaya: "Sétif", Fee: 550},
	{Wilaya: "Béjaïa", Fee: 600},
	{Wilaya: "Tlemcen", Fee: 600},
	{Wilaya: "Mostaganem", Fee: 600},
}

var seedProducts = []models.Product{
	{
		Title:       "Lentilles journalières FreshLook",
		Description: "Confort quotidien.",
		Price:       2500,
		Brand:       "FreshLook",
		Color:       "vert",
		Category:    models.CategoryLentilles,
		Images:      []string{"/images/lentilles1.jpg"},
		InStock:     true,
	},
	{
		Title:       "Solution d'entretien MultiPlus 360ml",
		Description: "Nettoyage et confort.",
		Price:       1200,
		Brand:       "Bausch & Lomb",
		Category:    models.CategorySolutions,
		Images:      []string{"/images/solution1.jpg"},
		InStock:     true,
	},
	{
		Title:       "Lunettes médicales Classic Noir",
		Description: "Monture légère.",
		Price:       8000,
		Brand:       "OptiCare",
		FrameShape:  "rect",
		Category:    models.CategoryLunettesMedicales,
		Images:      []string{"/images/med1.jpg"},
		InStock:     true,
	},
	{
		Title:       "Lunettes de soleil Aviator",
		Description: "Protection UV400.",
		Price:       9000,
		Brand:       "RayBest",
		FrameShape:  "pilot",
		Category:    models.CategoryLunettesSoleil,
		Images:      []string{"/images/sun1.jpg"},
		InStock:     true,
	},
}

var seedDoctors = []models.Doctor{
	{
		Name:        "Dr. Amine B.",
		Address:     "Alger Centre",
		Phone:       "0550 00 00 01",
		Hours:       "9:00-17:00",
		Specialties: []string{"Ophtalmologie"},
	},
	{
		Name:        "Dr. Sara K.",
		Address:     "Oran",
		Phone:       "0550 00 00 02",
		Hours:       "10:00-18:00",
		Specialties: []string{"Ophtalmologie", "Pédiatrie"},
	},
}

// Seed inserts the sample delivery fees, products and doctors that are not
// already present. Safe to call repeatedly.
func (h *AdminHandler) Seed(c *fiber.Ctx) error {
	ctx := c.Context()

	insertedFees := 0
	for _, fee := range seedFees {
		var existing models.DeliveryFee
		err := h.store.FindOne(ctx, store.ColDeliveryFees, bson.M{"wilaya": fee.Wilaya}, &existing)
		if errors.Is(err, store.ErrNotFound) {
			if _, err := h.store.InsertOne(ctx, store.ColDeliveryFees, fee); err != nil {
				return err
			}
			insertedFees++
		} else if err != nil {
			return err
		}
	}

	insertedProducts := 0
	for _, product := range seedProducts {
		var existing models.Product
		err := h.store.FindOne(ctx, store.ColProducts, bson.M{"title": product.Title}, &existing)
		if errors.Is(err, store.ErrNotFound) {
			if _, err := h.store.InsertOne(ctx, store.ColProducts, product); err != nil {
				return err
			}
			insertedProducts++
		} else if err != nil {
			return err
		}
	}

	insertedDoctors := 0
	for _, doctor := range seedDoctors {
		var existing models.Doctor
		err := h.store.FindOne(ctx, store.ColDoctors, bson.M{"name": doctor.Name}, &existing)
		if errors.Is(err, store.ErrNotFound) {
			if _, err := h.store.InsertOne(ctx, store.ColDoctors, doctor); err != nil {
				return err
			}
			insertedDoctors++
		} else if err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{
		"products":      insertedProducts,
		"delivery_fees": insertedFees,
		"doctors":       insertedDoctors,
	})
}
