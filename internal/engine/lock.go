package engine

import "sync"

// Guard holds the engine metadata lock until Release is called.
type Guard struct {
	once   sync.Once
	unlock func()
}

// Acquire blocks until the engine metadata lock is held.
func (a *API) Acquire() (*Guard, error) {
	if a == nil || a.Lock == nil {
		return nil, missing("lock")
	}
	if a.Unlock == nil {
		return nil, missing("unlock")
	}
	a.Lock()
	return &Guard{unlock: a.Unlock}, nil
}

// Release unlocks the engine. Calling it more than once is a no-op.
func (g *Guard) Release() {
	if g == nil {
		return
	}
	g.once.Do(g.unlock)
}

// WithLock runs fn with the metadata lock held. The lock is released on
// every exit path, including a panic in fn.
func (a *API) WithLock(fn func() error) error {
	g, err := a.Acquire()
	if err != nil {
		return err
	}
	defer g.Release()
	return fn()
}

// Tags copies the tag records of t while holding the metadata lock.
// A track without records yields an empty slice.
func (a *API) Tags(t Track) ([]Tag, error) {
	if a == nil || a.MetadataHead == nil {
		return nil, missing("getMetadataHead")
	}
	var tags []Tag
	err := a.WithLock(func() error {
		for rec := a.MetadataHead(t); rec != nil; rec = rec.Next {
			tags = append(tags, Tag{Key: rec.Key, Value: rec.Value})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}
