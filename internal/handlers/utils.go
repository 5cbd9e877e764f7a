package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// getOwnerID parses the owner ID from the route path. Every budget route
// is owner-partitioned, so a missing or malformed ID is a client error.
func getOwnerID(c echo.Context) (uuid.UUID, error) {
	ownerIDStr := c.Param("ownerId")
	if ownerIDStr == "" {
		return uuid.UUID{}, fmt.Errorf("owner ID is required")
	}

	ownerID, err := uuid.Parse(ownerIDStr)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("owner ID must be a valid UUID")
	}

	return ownerID, nil
}

// getUUIDParam parses a UUID path parameter by name
func getUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	if raw == "" {
		return uuid.UUID{}, fmt.Errorf("%s is required", name)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%s must be a valid UUID", name)
	}

	return id, nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}
