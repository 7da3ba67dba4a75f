package resources

import "github.com/spaghettifunk/rndr/engine/core"

// LockState tracks the lock/unlock pairing of a buffer.
type LockState struct {
	locked bool
}

func (l *LockState) Lock() error {
	if l.locked {
		core.LogError(core.ErrAlreadyLocked.Error())
		return core.ErrAlreadyLocked
	}
	l.locked = true
	return nil
}

func (l *LockState) Unlock() error {
	if !l.locked {
		core.LogError(core.ErrNotLocked.Error())
		return core.ErrNotLocked
	}
	l.locked = false
	return nil
}

func (l *LockState) Locked() bool {
	return l.locked
}
