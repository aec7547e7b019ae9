package stream

import (
	"encoding/json"

	"backend-waytrack/internal/render"
	"backend-waytrack/internal/workout"

	"github.com/google/uuid"
)

// DefaultChannel is the render channel map clients subscribe to.
const DefaultChannel = "board"

// Op is one render instruction pushed to clients. Clients keep their own
// marker table keyed by the op id, mirroring the server-side registry.
type Op struct {
	Op      string          `json:"op"`
	ID      string          `json:"id,omitempty"`
	IDs     []string        `json:"ids,omitempty"`
	Coords  *workout.Coords `json:"coords,omitempty"`
	Popup   *render.Popup   `json:"popup,omitempty"`
	Row     *render.Row     `json:"row,omitempty"`
	Visible *bool           `json:"visible,omitempty"`
	Zoom    int             `json:"zoom,omitempty"`
}

// View implements the render collaborator interfaces by broadcasting ops
// through the hub. Marker handles are ids minted here; the browser resolves
// them against its own marker table.
type View struct {
	hub     *Hub
	channel string
}

func NewView(hub *Hub, channel string) *View {
	if channel == "" {
		channel = DefaultChannel
	}
	return &View{hub: hub, channel: channel}
}

func (v *View) AddMarker(coords workout.Coords, popup render.Popup) render.MarkerHandle {
	id := uuid.NewString()
	v.send(Op{Op: "marker_add", ID: id, Coords: &coords, Popup: &popup})
	return id
}

func (v *View) RemoveMarker(h render.MarkerHandle) {
	id, ok := h.(string)
	if !ok {
		return
	}
	v.send(Op{Op: "marker_remove", ID: id})
}

func (v *View) FitBounds(handles []render.MarkerHandle) {
	ids := make([]string, 0, len(handles))
	for _, h := range handles {
		if id, ok := h.(string); ok {
			ids = append(ids, id)
		}
	}
	v.send(Op{Op: "fit_bounds", IDs: ids})
}

func (v *View) SetView(coords workout.Coords, zoom int) {
	v.send(Op{Op: "set_view", Coords: &coords, Zoom: zoom})
}

func (v *View) AppendRow(r render.Row) {
	v.send(Op{Op: "row_add", ID: r.ID, Row: &r})
}

func (v *View) RemoveRow(id string) {
	v.send(Op{Op: "row_remove", ID: id})
}

func (v *View) Clear() {
	v.send(Op{Op: "rows_clear"})
}

func (v *View) SetToolsVisible(visible bool) {
	v.send(Op{Op: "tools", Visible: &visible})
}

func (v *View) send(op Op) {
	payload, err := json.Marshal(op)
	if err != nil {
		return
	}
	v.hub.Broadcast(v.channel, payload)
}
