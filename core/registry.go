package core

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ModuleKind identifies a screen. The set is closed.
type ModuleKind uint8

const (
	KindOverview ModuleKind = iota
	KindAccountManager
	KindWalletOpen
	KindSettings
	KindLogs
	numModuleKinds
)

func (k ModuleKind) String() string {
	switch k {
	case KindOverview:
		return "Overview"
	case KindAccountManager:
		return "Accounts"
	case KindWalletOpen:
		return "Wallets"
	case KindSettings:
		return "Settings"
	case KindLogs:
		return "Logs"
	default:
		return fmt.Sprintf("ModuleKind(%d)", uint8(k))
	}
}

// Module is a screen controller. Modules are created once at startup and
// live for the whole process.
type Module interface {
	Kind() ModuleKind
	// Init runs once after every module is registered.
	Init(c *Core)
	// Reset drops module state tied to the open wallet.
	Reset(c *Core)
	Update(c *Core, msg tea.Msg) tea.Cmd
	View(c *Core, width, height int) string
}

// InputCapturer is implemented by modules that take free text. While
// CapturesInput is true global hotkeys are not applied.
type InputCapturer interface {
	CapturesInput() bool
}

// Registry owns the modules and the navigation stack.
type Registry struct {
	modules  [numModuleKinds]Module
	current  ModuleKind
	stack    []ModuleKind
	onChange func(ModuleKind)
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds m. Registering the same kind twice panics.
func (r *Registry) Register(m Module) {
	k := m.Kind()
	if k >= numModuleKinds {
		panic(fmt.Sprintf("core: invalid module kind %d", k))
	}
	if r.modules[k] != nil {
		panic(fmt.Sprintf("core: module %s registered twice", k))
	}
	r.modules[k] = m
}

// OnChange sets the hook invoked with the new current module whenever it changes.
func (r *Registry) OnChange(fn func(ModuleKind)) {
	r.onChange = fn
}

// Get returns the module of kind k and panics if it was never registered.
func (r *Registry) Get(k ModuleKind) Module {
	if k >= numModuleKinds || r.modules[k] == nil {
		panic(fmt.Sprintf("core: module %s is not registered", k))
	}
	return r.modules[k]
}

func (r *Registry) Has(k ModuleKind) bool {
	return k < numModuleKinds && r.modules[k] != nil
}

// Modules returns every registered module in kind order.
func (r *Registry) Modules() []Module {
	out := make([]Module, 0, len(r.modules))
	for _, m := range r.modules {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (r *Registry) Current() Module {
	return r.Get(r.current)
}

func (r *Registry) CurrentKind() ModuleKind {
	return r.current
}

// SetInitial makes k current without touching the stack.
func (r *Registry) SetInitial(k ModuleKind) {
	r.Get(k)
	r.current = k
	r.stack = r.stack[:0]
	r.changed()
}

// Select makes k current, pushing the previous module onto the back stack.
// Selecting the current module does nothing.
func (r *Registry) Select(k ModuleKind) {
	r.Get(k)
	if k == r.current {
		return
	}
	r.stack = append(r.stack, r.current)
	r.current = k
	r.changed()
}

// Back returns to the previous module. It reports false when the stack is empty.
func (r *Registry) Back() bool {
	n := len(r.stack)
	if n == 0 {
		return false
	}
	r.current = r.stack[n-1]
	r.stack = r.stack[:n-1]
	r.changed()
	return true
}

func (r *Registry) HasStack() bool {
	return len(r.stack) > 0
}

// Stack returns a copy of the back stack, oldest first.
func (r *Registry) Stack() []ModuleKind {
	return append([]ModuleKind(nil), r.stack...)
}

func (r *Registry) changed() {
	if r.onChange != nil {
		r.onChange(r.current)
	}
}
