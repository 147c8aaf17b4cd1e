package server

import (
	"encoding/json"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"windtunnel/model"
)

func computeContent(t *testing.T) string {
	t.Helper()
	req := model.ComputeRequest{
		Sensors: model.SensorArray{
			X: []float64{0.25, 0.75, 0.25, 0.75},
			Y: []float64{1, 1, -1, -1},
		},
		Samples: []model.PressureSample{
			{Angle: 0, Pressures: []float64{-50, -25, 50, 25}},
			{Angle: 4, Pressures: []float64{-50, -25, 50}},
		},
		Reference: model.ReferenceConditions{QInf: 100},
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestDispatchCompute(t *testing.T) {
	reply := dispatch(model.Msg{ID: "run-1", Type: TypeCompute, Content: computeContent(t)})
	if reply.Type != TypeComputed || reply.ID != "run-1" {
		t.Fatalf("reply %+v", reply)
	}
	var results []model.CoefficientResult
	if err := json.Unmarshal([]byte(reply.Content), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Failed() || math.Abs(results[0].CM+0.078125) > 1e-12 {
		t.Errorf("angle 0: %+v", results[0])
	}
	if !results[1].Failed() {
		t.Errorf("angle 4 has a short sample and should fail: %+v", results[1])
	}
}

func TestDispatchDrag(t *testing.T) {
	req := model.DragRequest{
		Velocity:  []model.ProfilePoint{{Location: 0, Value: 8}, {Location: 10, Value: 8}},
		Reference: model.ReferenceConditions{UInf: 10, Rho: 1},
	}
	data, _ := json.Marshal(req)
	reply := dispatch(model.Msg{Type: TypeDrag, Content: string(data)})
	if reply.Type != TypeDragged {
		t.Fatalf("reply %+v", reply)
	}
	if reply.ID == "" {
		t.Error("expected a generated id")
	}
	var res DragResult
	if err := json.Unmarshal([]byte(reply.Content), &res); err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Drag-160) > 1e-9 {
		t.Errorf("drag %f, want 160", res.Drag)
	}
}

func TestDispatchErrors(t *testing.T) {
	cases := map[string]model.Msg{
		"unknown type": {Type: "start"},
		"bad json":     {Type: TypeCompute, Content: "{"},
		"one location": {Type: TypeDrag, Content: `{"velocity":[{"location":0,"value":8}]}`},
		"bad airfoil":  {Type: TypeCompute, Content: `{"airfoil":[{"x":0,"z":0}]}`},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			reply := dispatch(msg)
			if reply.Type != TypeError || reply.Content == "" {
				t.Errorf("reply %+v", reply)
			}
		})
	}
}

func TestServeWs(t *testing.T) {
	s := NewServer(":0", websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(model.Msg{ID: "a", Type: TypeCompute, Content: computeContent(t)}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(model.Msg{ID: "b", Type: "nope"}); err != nil {
		t.Fatal(err)
	}

	want := []struct{ id, typ string }{{"a", TypeComputed}, {"b", TypeError}}
	for _, w := range want {
		var reply model.Msg
		if err := conn.ReadJSON(&reply); err != nil {
			t.Fatal(err)
		}
		if reply.ID != w.id || reply.Type != w.typ {
			t.Errorf("reply %+v, want id %s type %s", reply, w.id, w.typ)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer(":0", websocket.Upgrader{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("status %d", resp.StatusCode)
	}
}
