package store

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"linekeeper/internal/domain/line"
	"linekeeper/internal/domain/user"
)

// Seeder produces the bootstrap population used when a document cannot be loaded.
type Seeder interface {
	Lines() []line.Line
	Users() []user.User
}

var seedNames = []string{"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Heidi"}

// RandomSeeder generates 4-10 lines with exactly one default and 3-7 users.
// Output is fully determined by the supplied rand source.
type RandomSeeder struct {
	rnd *rand.Rand
}

func NewRandomSeeder(rnd *rand.Rand) *RandomSeeder {
	return &RandomSeeder{rnd: rnd}
}

func (g *RandomSeeder) id() uuid.UUID {
	return uuid.Must(uuid.NewRandomFromReader(g.rnd))
}

func (g *RandomSeeder) Lines() []line.Line {
	count := 4 + g.rnd.Intn(7)
	defaultIdx := g.rnd.Intn(count)

	lines := make([]line.Line, 0, count)
	for i := 0; i < count; i++ {
		id := g.id()
		lines = append(lines, line.Line{
			ID:        id,
			Name:      fmt.Sprintf("Line_%d_%s", i+1, id.String()[:4]),
			IPAddress: fmt.Sprintf("192.168.1.%d", i+10),
			Port:      1000 + g.rnd.Intn(9000),
			IsDefault: i == defaultIdx,
		})
	}
	return lines
}

func (g *RandomSeeder) Users() []user.User {
	count := 3 + g.rnd.Intn(5)
	levels := user.Levels()

	users := make([]user.User, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, user.User{
			ID:        g.id(),
			UserName:  fmt.Sprintf("%s%d", seedNames[g.rnd.Intn(len(seedNames))], 100+g.rnd.Intn(900)),
			Password:  fmt.Sprintf("%08x", g.rnd.Uint32()),
			AuthLevel: levels[g.rnd.Intn(len(levels))],
		})
	}
	return users
}

// StaticSeeder returns copies of fixed collections.
type StaticSeeder struct {
	SeedLines []line.Line
	SeedUsers []user.User
}

func (g StaticSeeder) Lines() []line.Line {
	return line.Clone(g.SeedLines)
}

func (g StaticSeeder) Users() []user.User {
	return user.Clone(g.SeedUsers)
}
