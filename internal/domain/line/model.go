package line

import "github.com/google/uuid"

// Line - именованная конфигурация сетевой точки подключения.
type Line struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IPAddress string    `json:"ipAddress"`
	Port      int       `json:"portnumber"`
	IsDefault bool      `json:"isDefault"`
}

// Clone returns a copy of lines that shares no backing array with the input.
func Clone(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// IndexOf returns the position of the line with id, or -1.
func IndexOf(lines []Line, id uuid.UUID) int {
	for i := range lines {
		if lines[i].ID == id {
			return i
		}
	}
	return -1
}
