package handlers

import (
	"errors"
	"net/http"

	devicedomain "github.com/micro-ha/smarthome-dashboard/internal/domain/device"
)

// ListDevices returns every stored device.
func (a *API) ListDevices(w http.ResponseWriter, r *http.Request) {
	items, err := a.devices.ListDevices(r.Context())
	if err != nil {
		a.logger.Error("list devices failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch devices")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateDevice validates and stores a new device.
func (a *API) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var payload devicedomain.Input
	if !decodeJSON(w, r, &payload, true) {
		return
	}
	device, err := a.devices.CreateDevice(r.Context(), payload)
	if err != nil {
		a.writeDeviceError(w, err, "Failed to create device")
		return
	}
	writeJSON(w, http.StatusCreated, device)
}

// ToggleDevice flips the power state of one device.
func (a *API) ToggleDevice(w http.ResponseWriter, r *http.Request, id string) {
	device, err := a.devices.ToggleDevice(r.Context(), id)
	if err != nil {
		a.writeDeviceError(w, err, "Failed to toggle device")
		return
	}
	writeJSON(w, http.StatusOK, device)
}

// UpdateDevice validates the full payload and merges it into the device.
func (a *API) UpdateDevice(w http.ResponseWriter, r *http.Request, id string) {
	var payload devicedomain.Input
	if !decodeJSON(w, r, &payload, true) {
		return
	}
	device, err := a.devices.UpdateDevice(r.Context(), id, payload)
	if err != nil {
		a.writeDeviceError(w, err, "Failed to update device")
		return
	}
	writeJSON(w, http.StatusOK, device)
}

func (a *API) DeleteDevice(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.devices.DeleteDevice(r.Context(), id); err != nil {
		a.writeDeviceError(w, err, "Failed to delete device")
		return
	}
	writeMessage(w, "Device deleted successfully")
}

func (a *API) writeDeviceError(w http.ResponseWriter, err error, fallback string) {
	var verr *devicedomain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, devicedomain.ErrDeviceNotFound):
		writeError(w, http.StatusNotFound, "Device not found")
	default:
		a.logger.Error("device request failed", "err", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
