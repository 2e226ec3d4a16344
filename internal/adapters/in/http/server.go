// Package http exposes the application's use cases over a REST API.
// Handlers translate JSON requests into commands and queries, and map
// domain failures onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"relist/internal/core/application/usecases/commands"
	"relist/internal/core/application/usecases/queries"
	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/listing"
	"relist/internal/core/domain/model/pickup"
	"relist/internal/core/domain/services"
	"relist/internal/core/ports"
	"relist/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createListingHandler       commands.CreateListingCommandHandler
	createPickupRequestHandler commands.CreatePickupRequestCommandHandler
	updatePickupRequestHandler commands.UpdatePickupRequestCommandHandler
	reviewListingHandler       commands.ReviewListingCommandHandler

	// Query handlers
	getListingsByStatusHandler        queries.GetListingsByStatusQueryHandler
	getPickupRequestsByAgentHandler   queries.GetPickupRequestsByAgentQueryHandler
	getPickupRequestsByListingHandler queries.GetPickupRequestsByListingQueryHandler

	validate *validator.Validate
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createListingHandler commands.CreateListingCommandHandler,
	createPickupRequestHandler commands.CreatePickupRequestCommandHandler,
	updatePickupRequestHandler commands.UpdatePickupRequestCommandHandler,
	reviewListingHandler commands.ReviewListingCommandHandler,
	getListingsByStatusHandler queries.GetListingsByStatusQueryHandler,
	getPickupRequestsByAgentHandler queries.GetPickupRequestsByAgentQueryHandler,
	getPickupRequestsByListingHandler queries.GetPickupRequestsByListingQueryHandler,
) *Server {
	return &Server{
		createListingHandler:              createListingHandler,
		createPickupRequestHandler:        createPickupRequestHandler,
		updatePickupRequestHandler:        updatePickupRequestHandler,
		reviewListingHandler:              reviewListingHandler,
		getListingsByStatusHandler:        getListingsByStatusHandler,
		getPickupRequestsByAgentHandler:   getPickupRequestsByAgentHandler,
		getPickupRequestsByListingHandler: getPickupRequestsByListingHandler,
		validate:                          validator.New(),
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/listings", s.CreateListing)
	api.GET("/listings", s.GetListings)
	api.PATCH("/listings/:id/review", s.ReviewListing)

	api.POST("/pickup-requests", s.CreatePickupRequest)
	api.GET("/pickup-requests", s.GetPickupRequests)
	api.PATCH("/pickup-requests/:id", s.UpdatePickupRequest)
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateListingRequest is the body of POST /api/v1/listings.
type CreateListingRequest struct {
	SellerID    string `json:"seller_id" validate:"required,uuid"`
	ProductType string `json:"product_type" validate:"required"`
	Brand       string `json:"brand"`
	Condition   string `json:"condition" validate:"required"`
	Description string `json:"description"`
}

// ListingResponse represents a listing in API responses.
type ListingResponse struct {
	ID          string            `json:"id"`
	SellerID    string            `json:"seller_id"`
	ProductType string            `json:"product_type"`
	Brand       string            `json:"brand,omitempty"`
	Condition   string            `json:"condition"`
	Status      string            `json:"status"`
	Checklist   map[string]string `json:"checklist,omitempty"`
	FinalPrice  *int64            `json:"final_price,omitempty"`
}

// CreateListing handles POST /api/v1/listings. A seller registers an item
// for pickup and resale; the listing starts in requested.
func (s *Server) CreateListing(ctx echo.Context) error {
	var req CreateListingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(ctx, "invalid listing data: "+err.Error())
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return badRequest(ctx, "invalid seller_id")
	}
	condition, err := listing.ConditionFromString(req.Condition)
	if err != nil {
		return badRequest(ctx, "invalid condition: "+req.Condition)
	}

	cmd, err := commands.NewCreateListingCommand(
		kernel.NewUUID(), sellerID, req.ProductType, req.Brand, condition, req.Description)
	if err != nil {
		return badRequest(ctx, "invalid listing data: "+err.Error())
	}

	l, err := s.createListingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toListingResponse(l))
}

// GetListings handles GET /api/v1/listings?status=<status>.
func (s *Server) GetListings(ctx echo.Context) error {
	status, err := listing.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return badRequest(ctx, "invalid status: "+ctx.QueryParam("status"))
	}

	query, err := queries.NewGetListingsByStatusQuery(status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	listings, err := s.getListingsByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve listings")
	}

	response := make([]ListingResponse, len(listings))
	for i, l := range listings {
		response[i] = ListingResponse{
			ID:          l.ID.String(),
			SellerID:    l.SellerID.String(),
			ProductType: l.ProductType,
			Brand:       l.Brand,
			Condition:   l.Condition,
			Status:      l.Status,
			FinalPrice:  l.FinalPrice,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReviewListingRequest is the body of PATCH /api/v1/listings/:id/review.
// Checklist and final price are required by the lifecycle engine for the
// statuses that need them, not by the transport layer.
type ReviewListingRequest struct {
	ActorRole  string            `json:"actor_role" validate:"required"`
	Target     string            `json:"target" validate:"required"`
	Checklist  map[string]string `json:"checklist,omitempty"`
	FinalPrice *int64            `json:"final_price,omitempty"`
}

// ReviewListing handles PATCH /api/v1/listings/:id/review. Drives a collected
// listing through the review stages.
func (s *Server) ReviewListing(ctx echo.Context) error {
	listingID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid listing id")
	}

	var req ReviewListingRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = s.validate.Struct(req); err != nil {
		return badRequest(ctx, "invalid review data: "+err.Error())
	}

	actorRole, err := kernel.RoleFromString(req.ActorRole)
	if err != nil {
		return badRequest(ctx, "invalid actor_role: "+req.ActorRole)
	}
	target, err := listing.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "invalid target: "+req.Target)
	}

	cmd, err := commands.NewReviewListingCommand(
		listingID, actorRole, target, req.Checklist, req.FinalPrice)
	if err != nil {
		return badRequest(ctx, "invalid review data: "+err.Error())
	}

	l, err := s.reviewListingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toListingResponse(l))
}

// CreatePickupRequestRequest is the body of POST /api/v1/pickup-requests.
type CreatePickupRequestRequest struct {
	ListingID       string `json:"listing_id" validate:"required,uuid"`
	SellerID        string `json:"seller_id" validate:"required,uuid"`
	DeliveryAgentID string `json:"delivery_agent_id" validate:"required,uuid"`
}

// PickupRequestResponse represents a pickup request in API responses.
type PickupRequestResponse struct {
	ID              string `json:"id"`
	ListingID       string `json:"listing_id"`
	SellerID        string `json:"seller_id"`
	DeliveryAgentID string `json:"delivery_agent_id"`
	Status          string `json:"status"`
}

// CreatePickupRequest handles POST /api/v1/pickup-requests. Creates a pending
// request and assigns the listing.
func (s *Server) CreatePickupRequest(ctx echo.Context) error {
	var req CreatePickupRequestRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(ctx, "invalid pickup request data: "+err.Error())
	}

	listingID, err := kernel.UUIDFromString(req.ListingID)
	if err != nil {
		return badRequest(ctx, "invalid listing_id")
	}
	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return badRequest(ctx, "invalid seller_id")
	}
	agentID, err := kernel.UUIDFromString(req.DeliveryAgentID)
	if err != nil {
		return badRequest(ctx, "invalid delivery_agent_id")
	}

	cmd, err := commands.NewCreatePickupRequestCommand(
		kernel.NewUUID(), listingID, sellerID, agentID)
	if err != nil {
		return badRequest(ctx, "invalid pickup request data: "+err.Error())
	}

	request, err := s.createPickupRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toPickupRequestResponse(request))
}

// UpdatePickupRequestRequest is the body of PATCH /api/v1/pickup-requests/:id.
type UpdatePickupRequestRequest struct {
	ActorRole string `json:"actor_role" validate:"required"`
	Target    string `json:"target" validate:"required"`
}

// UpdatePickupRequest handles PATCH /api/v1/pickup-requests/:id. Accepts,
// completes, or cancels a pickup request.
func (s *Server) UpdatePickupRequest(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid pickup request id")
	}

	var req UpdatePickupRequestRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = s.validate.Struct(req); err != nil {
		return badRequest(ctx, "invalid transition data: "+err.Error())
	}

	actorRole, err := kernel.RoleFromString(req.ActorRole)
	if err != nil {
		return badRequest(ctx, "invalid actor_role: "+req.ActorRole)
	}
	target, err := pickup.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "invalid target: "+req.Target)
	}

	cmd, err := commands.NewUpdatePickupRequestCommand(requestID, actorRole, target)
	if err != nil {
		return badRequest(ctx, "invalid transition data: "+err.Error())
	}

	request, err := s.updatePickupRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPickupRequestResponse(request))
}

// GetPickupRequests handles GET /api/v1/pickup-requests filtered by
// ?delivery_agent_id= or ?listing_id=. Exactly one filter must be given.
func (s *Server) GetPickupRequests(ctx echo.Context) error {
	agentParam := ctx.QueryParam("delivery_agent_id")
	listingParam := ctx.QueryParam("listing_id")

	if (agentParam == "") == (listingParam == "") {
		return badRequest(ctx, "exactly one of delivery_agent_id or listing_id is required")
	}

	var (
		requests []queries.PickupRequestQueryResponse
		err      error
	)

	if agentParam != "" {
		agentID, parseErr := kernel.UUIDFromString(agentParam)
		if parseErr != nil {
			return badRequest(ctx, "invalid delivery_agent_id")
		}
		query, queryErr := queries.NewGetPickupRequestsByAgentQuery(agentID)
		if queryErr != nil {
			return badRequest(ctx, queryErr.Error())
		}
		requests, err = s.getPickupRequestsByAgentHandler.Handle(ctx.Request().Context(), query)
	} else {
		listingID, parseErr := kernel.UUIDFromString(listingParam)
		if parseErr != nil {
			return badRequest(ctx, "invalid listing_id")
		}
		query, queryErr := queries.NewGetPickupRequestsByListingQuery(listingID)
		if queryErr != nil {
			return badRequest(ctx, queryErr.Error())
		}
		requests, err = s.getPickupRequestsByListingHandler.Handle(ctx.Request().Context(), query)
	}
	if err != nil {
		return internalError(ctx, "failed to retrieve pickup requests")
	}

	response := make([]PickupRequestResponse, len(requests))
	for i, r := range requests {
		response[i] = PickupRequestResponse{
			ID:              r.ID.String(),
			ListingID:       r.ListingID.String(),
			SellerID:        r.SellerID.String(),
			DeliveryAgentID: r.DeliveryAgentID.String(),
			Status:          r.Status,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toListingResponse(l *listing.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID().String(),
		SellerID:    l.SellerID().String(),
		ProductType: l.ProductType(),
		Brand:       l.Brand(),
		Condition:   l.Condition().String(),
		Status:      l.Status().String(),
		Checklist:   l.Checklist(),
		FinalPrice:  l.FinalPrice(),
	}
}

func toPickupRequestResponse(r *pickup.PickupRequest) PickupRequestResponse {
	return PickupRequestResponse{
		ID:              r.ID().String(),
		ListingID:       r.ListingID().String(),
		SellerID:        r.SellerID().String(),
		DeliveryAgentID: r.DeliveryAgentID().String(),
		Status:          r.Status().String(),
	}
}

// writeDomainError maps use case failures onto status codes. Every body is
// an ErrorResponse carrying the underlying message.
func writeDomainError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound):
		return writeError(ctx, http.StatusNotFound, err)
	case errors.Is(err, commands.ErrDuplicateActiveRequest):
		return writeError(ctx, http.StatusConflict, err)
	case errors.Is(err, ports.ErrStaleWrite):
		return writeError(ctx, http.StatusConflict, err)
	case errors.Is(err, services.ErrUnauthorizedActor):
		return writeError(ctx, http.StatusForbidden, err)
	case errors.Is(err, services.ErrIllegalTransition),
		errors.Is(err, services.ErrMissingRequiredFields),
		errors.Is(err, services.ErrEntityTerminal):
		return writeError(ctx, http.StatusUnprocessableEntity, err)
	case errors.Is(err, commands.ErrPartialFailure):
		return writeError(ctx, http.StatusInternalServerError, err)
	default:
		return writeError(ctx, http.StatusInternalServerError, err)
	}
}

func writeError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
