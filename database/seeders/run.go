// Package seeders registers the sample-data seed functions run by
// `showroom seed`. Seeder files add themselves from init():
//
//	func init() {
//	    seeders.Register("users", SeedUsers)
//	}
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc populates one slice of sample data.
type SeederFunc func(db *gorm.DB) error

type seeder struct {
	name string
	fn   SeederFunc
}

var (
	mu        sync.Mutex
	installed []seeder
)

// Register queues a seeder; they run in registration order.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	installed = append(installed, seeder{name: name, fn: fn})
}

// RunAll executes every registered seeder, stopping at the first failure.
func RunAll(db *gorm.DB) error {
	mu.Lock()
	queue := append([]seeder{}, installed...)
	mu.Unlock()

	if len(queue) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, s := range queue {
		fmt.Printf("  Running seeder: %s ... ", s.name)
		if err := s.fn(db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", s.name, err)
		}
		fmt.Println("done")
	}
	return nil
}
