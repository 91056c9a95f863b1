package transport

import (
	"errors"
	"fmt"
	"net/http"

	"juice-store/internal/domain"
	"juice-store/internal/logger"
	"juice-store/internal/middleware"
	"juice-store/internal/repository"
	"juice-store/internal/service"

	"github.com/go-chi/chi/v5"
)

const (
	MsgProductNameMissing     = "O nome do produto não foi inserido!"
	MsgProductPriceMissing    = "O preço do produto não foi inserido!"
	MsgProductCategoryMissing = "A categoria do produto não foi inserida!"
	MsgProductImageMissing    = "A imagem do produto não foi inserida!"
	MsgProductAmountMissing   = "A quantidade do produto não foi inserida!"
	MsgProductCreated         = "Produto cadastrado com sucesso!"
	MsgProductNotFound        = "Produto não encontrado"
	MsgProductDeleted         = "Produto deletado com sucesso"
	MsgNoProducts             = "Não há produtos disponíveis no momento."
	MsgNoProductsInCategory   = "Sem produtos existentes na categoria %s"
)

// ProductRequest represents a product creation or replacement payload.
// Every field is required at creation; numeric fields must be positive.
type ProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Category string  `json:"category" validate:"required"`
	Amount   int     `json:"amount" validate:"required,gt=0"`
	ImageURL string  `json:"imageUrl" validate:"required"`
}

var productMessages = map[string]string{
	"Name":     MsgProductNameMissing,
	"Price":    MsgProductPriceMissing,
	"Category": MsgProductCategoryMissing,
	"Amount":   MsgProductAmountMissing,
	"ImageURL": MsgProductImageMissing,
}

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	productService service.ProductService
	audit          *logger.Audit
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, audit *logger.Audit) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		audit:          audit,
	}
}

// RegisterRoutes registers the catalog routes. Reads are public,
// mutations require authentication.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Patch("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

// List returns products filtered by id or category, or the full
// catalog. Empty filtered results are reported as 404.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	category := r.URL.Query().Get("category")

	if id != "" {
		product, err := h.productService.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				h.audit.Failure("Find product by ID", "no product found with ID "+id)
				middleware.RespondWithMessage(w, http.StatusNotFound, MsgProductNotFound)
				return
			}
			h.audit.Error("Find product by ID", err)
			middleware.RespondWithServerError(w)
			return
		}

		h.audit.Success("Find product by ID", "returned product with ID "+id)
		middleware.RespondWithJSON(w, http.StatusOK, product)
		return
	}

	products, err := h.productService.List(r.Context(), category)
	if err != nil {
		h.audit.Error("Get products", err)
		middleware.RespondWithServerError(w)
		return
	}

	if len(products) == 0 {
		if category != "" {
			h.audit.Failure("Filter products by category", "no products in category "+category)
			middleware.RespondWithMessage(w, http.StatusNotFound, fmt.Sprintf(MsgNoProductsInCategory, category))
			return
		}
		h.audit.Failure("Get all products", "no product found")
		middleware.RespondWithMessage(w, http.StatusNotFound, MsgNoProducts)
		return
	}

	h.audit.Success("Get products", "returned product listing")
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create stores a new product after validating that every field was
// supplied
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest

	if err := middleware.DecodeBody(r, &req); err != nil {
		h.audit.Failure("Create product", "malformed request body")
		middleware.RespondWithMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if err := middleware.ValidateRequest(&req); err != nil {
		if msg, ok := middleware.FirstValidationMessage(err, productMessages); ok {
			h.audit.Failure("Create product", msg)
			middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
			return
		}
		h.audit.Error("Create product", err)
		middleware.RespondWithServerError(w)
		return
	}

	_, err := h.productService.Create(r.Context(), req.Name, req.Price, req.Category, req.ImageURL, req.Amount)
	if err != nil {
		h.audit.Error("Create product", err)
		middleware.RespondWithServerError(w)
		return
	}

	h.audit.Success("Create product", "product created")
	middleware.RespondWithMessage(w, http.StatusCreated, MsgProductCreated)
}

// Update replaces a product's fields wholesale with whatever was sent.
// No per-field validation happens here; absent fields blank the stored
// record.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	var req ProductRequest
	if err := middleware.DecodeBody(r, &req); err != nil {
		h.audit.Failure("Update product", "malformed request body")
		middleware.RespondWithMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	product := &domain.Product{
		ID:       id,
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		ImageURL: req.ImageURL,
		Amount:   req.Amount,
	}

	if err := h.productService.Update(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.audit.Failure("Update product", "no product found with ID "+id)
			middleware.RespondWithMessage(w, http.StatusNotFound, MsgProductNotFound)
			return
		}
		h.audit.Error("Update product", err)
		middleware.RespondWithServerError(w)
		return
	}

	h.audit.Success("Update product", "the product "+id+" has been updated")
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a product by identifier
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.audit.Failure("Delete product", "no product found with ID "+id)
			middleware.RespondWithMessage(w, http.StatusNotFound, MsgProductNotFound)
			return
		}
		h.audit.Error("Delete product", err)
		middleware.RespondWithServerError(w)
		return
	}

	h.audit.Success("Delete product", "the product "+id+" has been deleted")
	middleware.RespondWithMessage(w, http.StatusOK, MsgProductDeleted)
}
