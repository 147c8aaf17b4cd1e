package server

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"windtunnel/calculator"
	"windtunnel/geometry"
	"windtunnel/metrics"
	"windtunnel/model"
)

// message types
const (
	TypeCompute  = "compute"
	TypeComputed = "computed"
	TypeDrag     = "drag"
	TypeDragged  = "dragComputed"
	TypeError    = "error"
)

// Hub serves one connection: requests are evaluated in order and the
// replies are written by a single goroutine.
type Hub struct {
	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(conn *websocket.Conn) *Hub {
	return &Hub{
		conn:  conn,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
		done:  make(chan struct{}),
	}
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithError(err).Warn("write reply failed")
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			reply := dispatch(msg)
			select {
			case h.reply <- reply:
			case <-h.done:
				return
			}
		case <-h.done:
			return
		}
	}
}

// DragResult is the Content of a "dragComputed" reply.
type DragResult struct {
	Drag float64 `json:"drag"`
}

// dispatch evaluates one request. The reply keeps the request ID, or gets a
// fresh one when the client sent none.
func dispatch(msg model.Msg) model.Msg {
	id := msg.ID
	if id == "" {
		id = uuid.NewString()
	}
	entry := log.WithFields(log.Fields{"id": id, "type": msg.Type})

	var (
		replyType string
		content   interface{}
		err       error
	)
	switch msg.Type {
	case TypeCompute:
		replyType = TypeComputed
		content, err = compute(msg.Content)
	case TypeDrag:
		replyType = TypeDragged
		content, err = drag(msg.Content)
	default:
		err = fmt.Errorf("no such type %q", msg.Type)
	}
	metrics.RecordMessage(msg.Type, err)

	if err == nil {
		var data []byte
		if data, err = json.Marshal(content); err == nil {
			entry.Debug("request served")
			return model.Msg{ID: id, Type: replyType, Content: string(data)}
		}
	}
	entry.WithError(err).Warn("request failed")
	return model.Msg{ID: id, Type: TypeError, Content: err.Error()}
}

func compute(content string) ([]model.CoefficientResult, error) {
	var req model.ComputeRequest
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return nil, fmt.Errorf("decode compute request: %w", err)
	}
	ds := &calculator.Dataset{
		Name:      "ws",
		Sensors:   req.Sensors,
		Samples:   req.Samples,
		Reference: req.Reference,
		CpMode:    req.CpMode,
	}
	if len(req.Airfoil) > 0 {
		a, err := geometry.Load(req.Airfoil)
		if err != nil {
			return nil, err
		}
		ds.Airfoil = a
	}
	return calculator.NewCalculator(ds).Run(req.Angles), nil
}

func drag(content string) (DragResult, error) {
	var req model.DragRequest
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return DragResult{}, fmt.Errorf("decode drag request: %w", err)
	}
	ref := req.Reference
	d, err := calculator.WakeDrag(model.NewProfile(req.Velocity), model.NewProfile(req.Pressure), ref.UInf, ref.PInf, ref.Rho)
	if err != nil {
		return DragResult{}, err
	}
	return DragResult{Drag: d}, nil
}
