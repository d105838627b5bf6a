package session

import (
	"context"

	"go.uber.org/zap"

	"propdesk/internal/auth"
	"propdesk/internal/crud"
	"propdesk/internal/prompt"
	"propdesk/internal/schema"
	"propdesk/internal/validate"
)

// State is a node of the session state machine.
type State int

const (
	RoleSelect State = iota
	RegularMenu
	AdminLogin
	AdminMenu
	Exit
)

func (s State) String() string {
	switch s {
	case RoleSelect:
		return "role_select"
	case RegularMenu:
		return "regular_menu"
	case AdminLogin:
		return "admin_login"
	case AdminMenu:
		return "admin_menu"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

const invalidChoice = "Invalid choice. Please try again."

// action is one menu entry. A nil run marks the menu's Exit entry.
type action struct {
	label string
	run   func(ctx context.Context) error
}

// Controller drives one operator session: role selection, the regular and
// admin menus, and the admin credential gate.
type Controller struct {
	engine   *crud.Engine
	prompt   *prompt.Prompter
	catalog  *schema.Catalog
	verifier auth.Verifier
	log      *zap.Logger
}

func NewController(engine *crud.Engine, p *prompt.Prompter, catalog *schema.Catalog, verifier auth.Verifier, log *zap.Logger) *Controller {
	if verifier == nil {
		verifier = auth.DenyAll
	}
	return &Controller{
		engine:   engine,
		prompt:   p,
		catalog:  catalog,
		verifier: verifier,
		log:      log,
	}
}

// Run loops until the operator picks Exit at role selection, returning nil.
// It returns early with the input error when the input stream ends, or with
// the context error once ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	state := RoleSelect
	for state != Exit {
		if err := ctx.Err(); err != nil {
			return err
		}

		next, err := c.step(ctx, state)
		if err != nil {
			return err
		}
		if next != state {
			c.log.Debug("session state changed", zap.Stringer("from", state), zap.Stringer("to", next))
		}
		state = next
	}
	return nil
}

func (c *Controller) step(ctx context.Context, state State) (State, error) {
	switch state {
	case RoleSelect:
		return c.selectRole(ctx)
	case RegularMenu:
		return RoleSelect, c.runMenu(ctx, c.regularActions())
	case AdminLogin:
		return c.adminLogin(ctx)
	case AdminMenu:
		return RoleSelect, c.runMenu(ctx, c.adminActions())
	default:
		return Exit, nil
	}
}

func (c *Controller) selectRole(ctx context.Context) (State, error) {
	choice, err := c.prompt.DisplayMenu(ctx, []string{"Regular User", "Admin", "Exit"})
	if err != nil {
		return Exit, err
	}

	switch choice {
	case 1:
		return RegularMenu, nil
	case 2:
		return AdminLogin, nil
	case 3:
		return Exit, nil
	default:
		c.prompt.Println(invalidChoice)
		return RoleSelect, nil
	}
}

func (c *Controller) adminLogin(ctx context.Context) (State, error) {
	secret, err := c.prompt.ReadSecret(ctx, "Enter admin password: ")
	if err != nil {
		return Exit, err
	}

	if !c.verifier.Verify(secret) {
		c.log.Warn("admin login rejected")
		c.prompt.Println("Invalid password. Access denied.")
		return RoleSelect, nil
	}

	c.log.Info("admin login accepted")
	return AdminMenu, nil
}

// runMenu shows actions until the operator picks the Exit entry.
func (c *Controller) runMenu(ctx context.Context, actions []action) error {
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.label
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := c.prompt.DisplayMenu(ctx, labels)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if choice < 1 || choice > len(actions) {
			c.prompt.Println(invalidChoice)
			continue
		}

		selected := actions[choice-1]
		if selected.run == nil {
			return nil
		}
		if err := selected.run(ctx); err != nil {
			return err
		}
	}
}

func (c *Controller) regularActions() []action {
	return []action{
		c.view("View Apartment Details", c.catalog.Apartment),
		c.view("View Tenant Details", c.catalog.Tenant),
		c.view("View Parking Details", c.catalog.Parking),
		{"Search Apartments", c.engine.SearchApartments},
		{"Exit", nil},
	}
}

func (c *Controller) adminActions() []action {
	return []action{
		c.view("View Apartment Details", c.catalog.Apartment),
		c.view("View Tenant Details", c.catalog.Tenant),
		c.view("View Parking Details", c.catalog.Parking),
		{"Search Apartments", c.engine.SearchApartments},
		c.add("Add Apartment Details", c.catalog.Apartment),
		c.add("Add Tenant Details", c.catalog.Tenant),
		c.add("Add Parking Details", c.catalog.Parking),
		c.update("Update Apartment Details", c.catalog.Apartment),
		c.update("Update Tenant Details", c.catalog.Tenant),
		c.update("Update Parking Details", c.catalog.Parking),
		c.remove("Delete Apartment Details", c.catalog.Apartment),
		c.remove("Delete Tenant Details", c.catalog.Tenant),
		c.remove("Delete Parking Details", c.catalog.Parking),
		{"Exit", nil},
	}
}

func (c *Controller) view(label string, entity schema.Entity) action {
	return action{label, func(ctx context.Context) error {
		return c.engine.View(ctx, entity.Table)
	}}
}

func (c *Controller) add(label string, entity schema.Entity) action {
	return action{label, func(ctx context.Context) error {
		return c.engine.Add(ctx, entity)
	}}
}

func (c *Controller) update(label string, entity schema.Entity) action {
	return action{label, func(ctx context.Context) error {
		key, err := c.prompt.ValidateInput(ctx, entity.KeyPrompt, validate.Integer, entity.KeyError)
		if err != nil {
			return err
		}
		return c.engine.Update(ctx, entity, key)
	}}
}

func (c *Controller) remove(label string, entity schema.Entity) action {
	return action{label, func(ctx context.Context) error {
		return c.engine.Delete(ctx, entity)
	}}
}
