package transport

import (
	"errors"
	"net/http"

	"catalog-api/internal/middleware"
	"catalog-api/internal/repository"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientPageSize is the page size the browser UI slices listings into.
// Listing endpoints always return the full collection; pagination is
// purely a presentation concern and never reaches the server contract.
const ClientPageSize = 10

// CreateProductRequest represents the product creation payload. Price is
// a pointer so a missing field is distinguishable from zero.
type CreateProductRequest struct {
	Name       string   `json:"name" validate:"required"`
	Price      *float64 `json:"price" validate:"required"`
	Categories []string `json:"categories"`
}

// UpdateProductRequest represents a partial product update; nil fields
// leave the stored value unchanged.
type UpdateProductRequest struct {
	Name       *string   `json:"name"`
	Price      *float64  `json:"price"`
	Categories *[]string `json:"categories"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product creation validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "name and price required")
		return
	}

	categoryIDs, err := parseCategoryIDs(req.Categories)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "One or more category ids are invalid")
		return
	}

	product, err := h.productService.Create(r.Context(), req.Name, *req.Price, categoryIDs)
	if err != nil {
		h.respondProductError(w, err, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// List handles listing every product with expanded categories. The full
// collection is always returned; see ClientPageSize.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get handles fetching one product. A missing id is an empty success:
// the response is 200 with a JSON null body, not a 404.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	if product == nil {
		middleware.RespondWithJSON(w, http.StatusOK, nil)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Update handles partial product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product update decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := service.UpdateProductParams{
		Name:  req.Name,
		Price: req.Price,
	}

	if req.Categories != nil {
		categoryIDs, err := parseCategoryIDs(*req.Categories)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		params.CategoryIDs = categoryIDs
	}

	product, err := h.productService.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategoryIDs) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		h.respondProductError(w, err, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles product deletion; deleting a missing id still
// acknowledges success
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, middleware.SuccessResponse{Success: true})
}

func (h *ProductHandler) respondProductError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		middleware.RespondWithError(w, http.StatusBadRequest, "name and price required")
	case errors.Is(err, service.ErrNameTooLong):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPriceOutOfRange):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCategoryIDs):
		middleware.RespondWithError(w, http.StatusBadRequest, "One or more category ids are invalid")
	case errors.Is(err, repository.ErrProductAlreadyExists):
		middleware.RespondWithError(w, http.StatusBadRequest, "product already exists")
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	default:
		h.logger.Error("Product operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func parseCategoryIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
