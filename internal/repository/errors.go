package repository

import "errors"

// ErrDuplicate is returned by Create operations when a uniqueness constraint
// (users.email or favorites(user_id, url)) already holds a matching row.
var ErrDuplicate = errors.New("duplicate record")
