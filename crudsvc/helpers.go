package crudsvc

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-crud"
	"github.com/google/uuid"
)

// queryList splits a comma separated query value, dropping blank entries.
func queryList(ctx crud.Context, key string) []string {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// queryUUIDSlice ignores entries that do not parse.
func queryUUIDSlice(ctx crud.Context, key string) []uuid.UUID {
	parts := queryList(ctx, key)
	if len(parts) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		if id, err := uuid.Parse(part); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// queryUUID returns uuid.Nil for missing or malformed values.
func queryUUID(ctx crud.Context, key string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(ctx.Query(key)))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func queryInt(ctx crud.Context, key string, def int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(ctx.Query(key)))
	if err != nil {
		return def
	}
	return parsed
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil || parsed == uuid.Nil {
		return uuid.Nil, invalidID(id)
	}
	return parsed, nil
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
