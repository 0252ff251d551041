package auth

import (
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"

	errs "github.com/servly/admin-console/internal/errors"
	"github.com/servly/admin-console/session"
)

// bundlePayload is the JSON carried inside the base64 credential bundle the
// login endpoint responds with.
type bundlePayload struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// DecodeBundle decodes the base64 credential bundle into a session snapshot.
// Both standard and URL-safe alphabets are accepted.
func DecodeBundle(encoded string) (session.Snapshot, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(encoded)
	}
	if err != nil {
		return session.Snapshot{}, errors.Wrap(errs.ErrBundleDecode, err.Error())
	}

	var payload bundlePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return session.Snapshot{}, errors.Wrap(errs.ErrBundleDecode, err.Error())
	}
	if payload.AccessToken == "" {
		return session.Snapshot{}, errors.Wrap(errs.ErrBundleDecode, "bundle has no access token")
	}

	return session.Snapshot{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		Email:        payload.Email,
		Role:         payload.Role,
	}, nil
}

// EncodeBundle is the inverse of DecodeBundle, used by tests and fixtures.
func EncodeBundle(snap session.Snapshot) string {
	raw, _ := json.Marshal(bundlePayload{
		AccessToken:  snap.AccessToken,
		RefreshToken: snap.RefreshToken,
		Email:        snap.Email,
		Role:         snap.Role,
	})
	return base64.StdEncoding.EncodeToString(raw)
}
