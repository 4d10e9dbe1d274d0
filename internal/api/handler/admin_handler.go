package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/api/middleware"
	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

type AdminHandler struct {
	base
	admin   ports.AdminService
	mailing ports.MailingService
	logger  zerolog.Logger
}

func NewAdminHandler(admin ports.AdminService, mailing ports.MailingService, sessions ports.SessionManager, siteName string, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		base:    base{sessions: sessions, siteName: siteName},
		admin:   admin,
		mailing: mailing,
		logger:  logger,
	}
}

// Dashboard renders counts and the latest activity.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	data, err := h.admin.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin/dashboard.html", h.view(c, "dashboard", map[string]any{
		"dashboard": data,
	}))
}

// UsersPage renders the account management table.
func (h *AdminHandler) UsersPage(c echo.Context) error {
	accounts, err := h.admin.ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin/users.html", h.view(c, "users", map[string]any{
		"accounts": accounts,
	}))
}

// UsersAction dispatches the account management forms. Every form posts to
// the same path with an action discriminator.
func (h *AdminHandler) UsersAction(c echo.Context) error {
	ctx := c.Request().Context()
	const path = "/backoffice/users"

	switch action := c.FormValue("action"); action {
	case "create":
		input := ports.CreateAccountInput{
			FullName: c.FormValue("full_name"),
			Email:    c.FormValue("email"),
			Password: c.FormValue("password"),
			Role:     c.FormValue("role"),
		}
		account, err := h.admin.CreateAccount(ctx, input)
		if err != nil {
			return h.redirectWithError(c, path, err)
		}
		return h.redirectWithSuccess(c, path, fmt.Sprintf("Account %s created.", account.Email))

	case "toggle_active":
		targetID, err := formID(c, "user_id")
		if err != nil {
			return h.redirectWithError(c, path, err)
		}
		if err := h.admin.ToggleAccountActive(ctx, middleware.Actor(c).ID, targetID); err != nil {
			return h.redirectWithError(c, path, err)
		}
		return h.redirectWithSuccess(c, path, "Account status updated.")

	case "reset_password":
		targetID, err := formID(c, "user_id")
		if err != nil {
			return h.redirectWithError(c, path, err)
		}
		if err := h.admin.ResetPassword(ctx, targetID, c.FormValue("new_password")); err != nil {
			return h.redirectWithError(c, path, err)
		}
		return h.redirectWithSuccess(c, path, "Password reset.")

	case "change_role":
		targetID, err := formID(c, "user_id")
		if err != nil {
			return h.redirectWithError(c, path, err)
		}
		if err := h.admin.ChangeRole(ctx, targetID, c.FormValue("role")); err != nil {
			return h.redirectWithError(c, path, err)
		}
		return h.redirectWithSuccess(c, path, "Role updated.")

	default:
		h.flash(c, domain.FlashDanger, "Unknown action.")
		return c.Redirect(http.StatusSeeOther, path)
	}
}

// EntityPage returns a handler rendering the management page for one entity
// kind. The rows are exposed under listKey so each template keeps its own
// vocabulary.
func (h *AdminHandler) EntityPage(kind domain.EntityKind, view, listKey, activePage string) echo.HandlerFunc {
	return func(c echo.Context) error {
		entities, err := h.admin.ListEntities(c.Request().Context(), kind)
		if err != nil {
			return err
		}
		return c.Render(http.StatusOK, view, h.view(c, activePage, map[string]any{
			listKey: entities,
		}))
	}
}

// EntityAction returns the form dispatcher for one entity kind.
func (h *AdminHandler) EntityAction(kind domain.EntityKind, path string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		switch action := c.FormValue("action"); action {
		case "create":
			entity, err := h.admin.CreateEntity(ctx, h.entityInput(c, kind))
			if err != nil {
				return h.redirectWithError(c, path, err)
			}
			return h.redirectWithSuccess(c, path, fmt.Sprintf("%q created.", entity.Name))

		case "update":
			id, err := formID(c, "entity_id")
			if err != nil {
				return h.redirectWithError(c, path, err)
			}
			if err := h.admin.UpdateEntity(ctx, id, h.entityInput(c, kind)); err != nil {
				return h.redirectWithError(c, path, err)
			}
			return h.redirectWithSuccess(c, path, "Changes saved.")

		case "delete":
			id, err := formID(c, "entity_id")
			if err != nil {
				return h.redirectWithError(c, path, err)
			}
			if err := h.admin.DeleteEntity(ctx, id); err != nil {
				return h.redirectWithError(c, path, err)
			}
			return h.redirectWithSuccess(c, path, "Deleted.")

		case "toggle_suspended":
			id, err := formID(c, "entity_id")
			if err != nil {
				return h.redirectWithError(c, path, err)
			}
			if err := h.admin.ToggleEntitySuspended(ctx, id); err != nil {
				return h.redirectWithError(c, path, err)
			}
			return h.redirectWithSuccess(c, path, "Visibility updated.")

		default:
			h.flash(c, domain.FlashDanger, "Unknown action.")
			return c.Redirect(http.StatusSeeOther, path)
		}
	}
}

func (h *AdminHandler) entityInput(c echo.Context, kind domain.EntityKind) ports.EntityInput {
	return ports.EntityInput{
		Kind:        kind,
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Criteria:    c.FormValue("criteria"),
		LinkURL:     c.FormValue("link_url"),
		Category:    c.FormValue("category"),
		Title:       c.FormValue("title"),
		Icon:        c.FormValue("icon"),
		Image:       formFile(c, "image"),
	}
}

// StaffPage renders the staff directory with the service list used by the
// assignment checkboxes.
func (h *AdminHandler) StaffPage(c echo.Context) error {
	ctx := c.Request().Context()

	people, err := h.admin.ListStaff(ctx)
	if err != nil {
		return err
	}
	services, err := h.admin.ListEntities(ctx, domain.KindService)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin/people.html", h.view(c, "people", map[string]any{
		"people":   people,
		"services": services,
	}))
}

// StaffAction dispatches the staff directory forms.
func (h *AdminHandler) StaffAction(c echo.Context) error {
	ctx := c.Request().Context()
	const path = "/backoffice/people"

	switch action := c.FormValue("action"); action {
	case "create":
		input := ports.StaffInput{
			FullName:   c.FormValue("full_name"),
			Email:      c.FormValue("email"),
			Phone:      c.FormValue("phone"),
			Specialty:  c.FormValue("specialty"),
			ServiceIDs: formIDs(c, "service_ids"),
			Photo:      formFile(c, "photo"),
		}
		person, err := h.admin.CreateStaff(ctx, input)
		if err != nil {
			return h.redirectWithError(c, path, err)
		}
		return h.redirectWithSuccess(c, path, fmt.Sprintf("%s added to the team.", person.FullName))

	case "set_services":
		personID, err := formID(c, "person_id")
		if err != nil {
			return h.redirectWithError(c, path, err)
		}
		diff, err := h.admin.SetStaffServices(ctx, personID, formIDs(c, "service_ids"))
		if err != nil {
			return h.redirectWithError(c, path, err)
		}
		return h.redirectWithSuccess(c, path,
			fmt.Sprintf("Assignments updated: %d added, %d removed.", len(diff.Added), len(diff.Removed)))

	case "toggle_active":
		personID, err := formID(c, "person_id")
		if err != nil {
			return h.redirectWithError(c, path, err)
		}
		if err := h.admin.ToggleStaffActive(ctx, personID); err != nil {
			return h.redirectWithError(c, path, err)
		}
		return h.redirectWithSuccess(c, path, "Status updated.")

	case "delete":
		personID, err := formID(c, "person_id")
		if err != nil {
			return h.redirectWithError(c, path, err)
		}
		if err := h.admin.DeleteStaff(ctx, personID); err != nil {
			return h.redirectWithError(c, path, err)
		}
		return h.redirectWithSuccess(c, path, "Removed from the team.")

	default:
		h.flash(c, domain.FlashDanger, "Unknown action.")
		return c.Redirect(http.StatusSeeOther, path)
	}
}

// MailingPage renders the campaign composer.
func (h *AdminHandler) MailingPage(c echo.Context) error {
	return c.Render(http.StatusOK, "admin/mailing.html", h.view(c, "mailing", nil))
}

// MailingAction runs a bulk campaign and reports the per-recipient tallies.
func (h *AdminHandler) MailingAction(c echo.Context) error {
	stats, err := h.mailing.SendCampaign(c.Request().Context(), c.FormValue("subject"), c.FormValue("message"))
	if err != nil {
		return h.redirectWithError(c, "/backoffice/mailing", err)
	}

	notice := fmt.Sprintf("Campaign finished: %d of %d sent, %d failed.", stats.Sent, stats.Total, stats.Failed)
	level := domain.FlashSuccess
	if stats.Failed > 0 {
		level = domain.FlashDanger
	}
	h.flash(c, level, notice)
	return c.Redirect(http.StatusSeeOther, "/backoffice/mailing")
}

// ChatPage renders recent messages and conversations.
func (h *AdminHandler) ChatPage(c echo.Context) error {
	messages, conversations, err := h.admin.RecentChat(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin/chat.html", h.view(c, "chat", map[string]any{
		"messages":      messages,
		"conversations": conversations,
	}))
}

// formID reads a required integer id field.
func formID(c echo.Context, field string) (int64, error) {
	id, err := strconv.ParseInt(c.FormValue(field), 10, 64)
	if err != nil {
		return 0, domain.ErrMissingFields
	}
	return id, nil
}

// formIDs reads a repeated integer field, skipping unparsable values.
func formIDs(c echo.Context, field string) []int64 {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	var ids []int64
	for _, raw := range params[field] {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// formFile reads an optional uploaded file; a missing part is nil.
func formFile(c echo.Context, field string) *multipart.FileHeader {
	file, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return file
}
