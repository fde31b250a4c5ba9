package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents a misuse or failure detected by the runtime.
//
// Runtime errors include:
//   - Hook context: a hook was called outside a component render
//   - Hook order: hook calls differ in kind or count between renders
//   - Key collision: two siblings share an explicit key
//   - Task panic: a component, effect or cleanup panicked inside a task
//
// Hook errors are raised by panicking with a *RuntimeError; Root.Render,
// Root.Flush and Root.Run recover them and return them as ordinary errors.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// InstanceID identifies the affected instance, when there is one.
	InstanceID InstanceID

	// Component names the affected component.
	Component string

	// Details contains additional context.
	Details map[string]string

	// Value is the recovered panic value for TASK_PANIC.
	Value any

	// Stack is the goroutine stack captured at recovery for TASK_PANIC.
	Stack []byte
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeHookContext indicates a hook call with no rendering instance.
	ErrCodeHookContext RuntimeErrorCode = "HOOK_CONTEXT"

	// ErrCodeHookOrder indicates the hook sequence changed between renders.
	ErrCodeHookOrder RuntimeErrorCode = "HOOK_ORDER"

	// ErrCodeKeyCollision indicates duplicate keys among siblings.
	ErrCodeKeyCollision RuntimeErrorCode = "KEY_COLLISION"

	// ErrCodeTaskPanic indicates a panic that was not a *RuntimeError.
	ErrCodeTaskPanic RuntimeErrorCode = "TASK_PANIC"
)

// ErrRootUnmounted is returned when a root is used after Unmount.
var ErrRootUnmounted = errors.New("engine: root is unmounted")

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.InstanceID != "" && e.Component != "" {
		return fmt.Sprintf("%s: %s (instance=%s, component=%s)", e.Code, e.Message, e.InstanceID, e.Component)
	}
	if e.Component != "" {
		return fmt.Sprintf("%s: %s (component=%s)", e.Code, e.Message, e.Component)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func hasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsHookContextError returns true if the error is a HOOK_CONTEXT error.
func IsHookContextError(err error) bool { return hasCode(err, ErrCodeHookContext) }

// IsHookOrderError returns true if the error is a HOOK_ORDER error.
func IsHookOrderError(err error) bool { return hasCode(err, ErrCodeHookOrder) }

// IsKeyCollision returns true if the error is a KEY_COLLISION error.
func IsKeyCollision(err error) bool { return hasCode(err, ErrCodeKeyCollision) }

// IsTaskPanic returns true if the error wraps a recovered non-runtime panic.
func IsTaskPanic(err error) bool { return hasCode(err, ErrCodeTaskPanic) }

// IsQuotaError returns true if the error is a StepsExceededError.
// Uses errors.As to handle wrapped errors.
func IsQuotaError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}

func newHookContextError(hook string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeHookContext,
		Message: fmt.Sprintf("%s called outside a component render", hook),
		Details: map[string]string{"hook": hook},
	}
}

func newHookOrderError(inst *Instance, slot int, msg string) *RuntimeError {
	return &RuntimeError{
		Code:       ErrCodeHookOrder,
		Message:    msg,
		InstanceID: inst.id,
		Component:  inst.component.Name(),
		Details:    map[string]string{"slot": fmt.Sprintf("%d", slot)},
	}
}

func newKeyCollisionError(parent *Instance, key string) *RuntimeError {
	return &RuntimeError{
		Code:       ErrCodeKeyCollision,
		Message:    fmt.Sprintf("duplicate key %q among siblings", key),
		InstanceID: parent.id,
		Component:  parent.component.Name(),
		Details:    map[string]string{"key": key},
	}
}
