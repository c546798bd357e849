package valuestore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/towerstyle/internal/ports"
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

// valueProducer is implemented by every leaf a property can reference.
type valueProducer interface {
	ValueID() uuid.UUID
	ValueProducer() style.Producer
}

// Index maps producer ids to producers and asset ids to file paths for one
// committed document.
type Index struct {
	mu         sync.RWMutex
	producers  map[uuid.UUID]style.Producer
	assetPaths map[uuid.UUID]string
}

// Build indexes doc.
func Build(doc *style.StyleDefinition) *Index {
	idx := &Index{}
	idx.Rebuild(doc)
	return idx
}

// Rebuild replaces the index content with the producers of doc.
func (i *Index) Rebuild(doc *style.StyleDefinition) {
	producers := make(map[uuid.UUID]style.Producer)
	assetPaths := make(map[uuid.UUID]string)

	if doc != nil {
		if doc.Assets != nil {
			for _, asset := range doc.Assets.AllT() {
				add(producers, asset)
				assetPaths[asset.ID] = asset.Path
			}
		}
		if doc.Vars != nil {
			for _, variable := range doc.Vars.AllT() {
				add(producers, variable)
			}
		}
	}

	i.mu.Lock()
	i.producers = producers
	i.assetPaths = assetPaths
	i.mu.Unlock()
}

func add(producers map[uuid.UUID]style.Producer, p valueProducer) {
	producers[p.ValueID()] = p.ValueProducer()
}

// Producer returns the producer with the given id.
func (i *Index) Producer(id uuid.UUID) (style.Producer, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	p, ok := i.producers[id]
	return p, ok
}

// AssetPath returns the path of the asset with the given id.
func (i *Index) AssetPath(id uuid.UUID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	path, ok := i.assetPaths[id]
	return path, ok
}

// Len returns the number of indexed producers.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.producers)
}

// Follow rebuilds the index from current() every time the document changes.
func (i *Index) Follow(publisher ports.EventPublisher, current func() *style.StyleDefinition) (ports.Subscription, error) {
	return publisher.Subscribe(ports.EventStyleChanged, func(context.Context, ports.DomainEvent) error {
		i.Rebuild(current())
		return nil
	})
}
