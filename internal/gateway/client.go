package gateway

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/lumos/internal/config"
	"github.com/wheelibin/lumos/internal/constants"
	"github.com/wheelibin/lumos/internal/models"
)

var ErrUnreachable = errors.New("unreachable")

// time between requests when reading devices one by one
const discoveryRequestSpacing = 100 * time.Millisecond

type Client struct {
	logger     *log.Logger
	baseURL    string
	key        string
	httpClient *http.Client
	// used for the event stream, which must not time out
	transport *http.Transport
}

func NewClient(cfg config.Config, logger *log.Logger) *Client {
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	return &Client{
		logger:     logger,
		baseURL:    baseURL(cfg.GatewayIP),
		key:        cfg.GatewayKey,
		httpClient: &http.Client{Transport: tr, Timeout: cfg.RequestTimeout},
		transport:  tr,
	}
}

func baseURL(address string) string {
	address = strings.TrimSuffix(address, "/")
	if strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://") {
		return address
	}
	return "https://" + address
}

func (c *Client) GET(path string) ([]byte, error) {
	return c.makeRequest(http.MethodGet, path, nil)
}

func (c *Client) PUT(path string, body []byte) ([]byte, error) {
	return c.makeRequest(http.MethodPut, path, body)
}

// ListDevices returns the instance ids of every device paired with the gateway.
func (c *Client) ListDevices() ([]int, error) {
	body, err := c.GET(DevicesPath())
	if err != nil {
		return nil, fmt.Errorf("error reading devices from gateway: %w", err)
	}
	return models.DecodeInstanceIDs(body)
}

func (c *Client) GetDevice(instanceID int) (models.Device, error) {
	body, err := c.GET(DevicePath(instanceID))
	if err != nil {
		return models.Device{}, fmt.Errorf("error reading device (%d) from gateway: %w", instanceID, err)
	}
	return models.DecodeDevice(body)
}

// DiscoverDevices reads every device. Devices that can't be read are logged and skipped.
func (c *Client) DiscoverDevices() ([]models.Device, error) {
	ids, err := c.ListDevices()
	if err != nil {
		return nil, err
	}
	c.logger.Info("Read device list", "total", len(ids))

	devices := lo.FilterMap(ids, func(id int, i int) (models.Device, bool) {
		if i > 0 {
			time.Sleep(discoveryRequestSpacing)
		}
		device, err := c.GetDevice(id)
		if err != nil {
			c.logger.Error(err)
			return models.Device{}, false
		}
		c.logger.Debug("Read device", "id", id, "name", device.Name, "type", device.Type)
		return device, true
	})

	return devices, nil
}

func DevicesPath() string {
	return "/" + constants.EndpointDevices
}

func DevicePath(instanceID int) string {
	return fmt.Sprintf("/%s/%d", constants.EndpointDevices, instanceID)
}

func (c *Client) makeRequest(verb string, path string, body []byte) ([]byte, error) {

	req, err := http.NewRequest(verb, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("gateway-application-key", c.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(err)
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		responseBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading gateway response: %w", err)
		}
		return responseBody, nil
	case http.StatusMultiStatus:
		// the gateway accepted the request but couldn't reach the device
		return nil, ErrUnreachable
	default:
		c.logger.Error("Error making gateway call", "path", path, "status", resp.Status)
		return nil, fmt.Errorf("gateway call %s %s failed: %s", verb, path, resp.Status)
	}
}
