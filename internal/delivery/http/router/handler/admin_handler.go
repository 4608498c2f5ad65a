package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the back-office handlers. Routes using
// it sit behind the admin role gate; the services enforce it again.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(adminUC usecase.AdminUsecase, orderUC usecase.OrderUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminUC: adminUC,
		orderUC: orderUC,
		logger:  logger,
	}
}

// ListUsers returns accounts of a role, defaulting to regular shoppers.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminUC.ListUsers(c.Request().Context(), deliverycontext.GetClaims(c), entity.Role(c.QueryParam("role")))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserViews(users), "Users retrieved")
}

// GetUser returns a single account.
func (h *AdminHandler) GetUser(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.adminUC.GetUser(c.Request().Context(), deliverycontext.GetClaims(c), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "User retrieved")
}

type updateUserRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role" validate:"omitempty,oneof=user seller admin"`
}

// UpdateUser applies an admin edit. Empty fields are left unchanged; the
// password hash is never touched here.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.adminUC.UpdateUser(c.Request().Context(), &usecase.UpdateUserInput{
		Actor:  deliverycontext.GetClaims(c),
		UserID: userID,
		Name:   req.Name,
		Avatar: req.Avatar,
		Role:   entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "User updated")
}

// DeleteUser removes an account. Self-deletion is refused by the service.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminUC.DeleteUser(c.Request().Context(), deliverycontext.GetClaims(c), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted")
}

// Dashboard returns the back-office overview.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.adminUC.GetDashboard(c.Request().Context(), deliverycontext.GetClaims(c))
	if err != nil {
		return errors.WithStack(err)
	}

	// Recent users need the sanitized view; counts pass through as-is.
	return response.Success(c, http.StatusOK, map[string]any{
		"totalUsers":   stats.TotalUsers,
		"totalSellers": stats.TotalSellers,
		"recentUsers":  newUserViews(stats.RecentUsers),
	}, "Dashboard retrieved")
}

// ListOrders returns every order in the store.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderUC.ListAllOrders(c.Request().Context(), deliverycontext.GetClaims(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderViews(orders), "Orders retrieved")
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// UpdateOrderStatus applies a status transition validated against the order
// lifecycle.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), &usecase.UpdateOrderStatusInput{
		Actor:   deliverycontext.GetClaims(c),
		OrderID: orderID,
		Status:  entity.OrderStatus(req.Status),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "Order status updated")
}
