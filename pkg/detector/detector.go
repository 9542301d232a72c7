package detector

import (
	"MotionTrace/internal/entity"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var ErrEmptyFrame = errors.New("empty frame payload")

// Detector is the opaque holistic detection capability: one image in, up to
// four optional landmark groups out. Implementations are safe to share across
// callers but invocations are serialized internally; a detector instance must
// never process two frames at once.
type Detector interface {
	Detect(frame []byte) (*entity.HolisticResult, error)
	Close()
}

// Options configure a detector at construction. StaticImageMode distinguishes
// the single-frame live path (every frame independent) from the batch
// video-tracking path; both produce the same result contract.
type Options struct {
	URL                    string
	StaticImageMode        bool
	MinDetectionConfidence float64
	MinTrackingConfidence  float64
}

func DefaultOptions() Options {
	return Options{
		URL:                    detectorURL(),
		MinDetectionConfidence: 0.5,
		MinTrackingConfidence:  0.5,
	}
}

type configMessage struct {
	StaticImageMode        bool    `json:"static_image_mode"`
	MinDetectionConfidence float64 `json:"min_detection_confidence"`
	MinTrackingConfidence  float64 `json:"min_tracking_confidence"`
}

type holisticClient struct {
	conn         *websocket.Conn
	opts         Options
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewHolisticClient connects to the holistic detection service. Construction
// is expensive relative to a single frame, so callers are expected to build
// one client per configuration and reuse it for the process lifetime.
func NewHolisticClient(opts Options) Detector {
	client := &holisticClient{
		opts:         opts,
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go func() {
		if err := client.reconnect(); err != nil {
			log.Printf("Initial connection to holistic service failed: %v. Will retry on demand.", err)
		} else {
			log.Printf("Successfully connected to holistic service")
		}
	}()

	return client
}

func (c *holisticClient) reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconnectLocked()
}

func (c *holisticClient) reconnectLocked() error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	if c.opts.URL == "" {
		return fmt.Errorf("holistic service URL not configured")
	}

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.opts.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.opts.URL, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Error sending pong: %v", err)
		}
		return nil
	})

	// The service applies this configuration to every subsequent frame on
	// the connection.
	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteJSON(configMessage{
		StaticImageMode:        c.opts.StaticImageMode,
		MinDetectionConfidence: c.opts.MinDetectionConfidence,
		MinTrackingConfidence:  c.opts.MinTrackingConfidence,
	}); err != nil {
		conn.Close()
		return fmt.Errorf("failed to send detector configuration: %w", err)
	}
	conn.SetWriteDeadline(time.Time{})

	c.conn = conn

	go c.keepAlive(conn)

	return nil
}

func (c *holisticClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Ping failed for holistic service, marking connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

// Detect sends one frame to the service and waits for its landmark result.
// Calls are mutually exclusive; concurrent callers queue on the client mutex.
func (c *holisticClient) Detect(frame []byte) (*entity.HolisticResult, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyFrame
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		if err := c.reconnectLocked(); err != nil {
			return nil, fmt.Errorf("cannot connect to holistic service: %w", err)
		}
	}

	conn := c.conn

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.conn = nil
		conn.Close()
		return nil, fmt.Errorf("error sending frame: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.readTimeout))

	_, message, err := conn.ReadMessage()
	if err != nil {
		c.conn = nil
		conn.Close()
		return nil, fmt.Errorf("error reading detection result: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	var result entity.HolisticResult
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling detection result: %w", err)
	}

	return &result, nil
}

func (c *holisticClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func detectorURL() string {
	url := os.Getenv("AI_HOLISTIC_DETECTION_URL")
	if url == "" {
		url = "ws://localhost:8000/api/v1/holistic/ws"
	}
	return url
}
