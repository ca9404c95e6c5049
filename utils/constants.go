package utils

import "time"

// RevokedTokenPrefix is the Redis key prefix for revoked session tokens.
const RevokedTokenPrefix = "revoked:"

// UnreadCountPrefix is the Redis key prefix for cached unread-notification counts.
const UnreadCountPrefix = "unread:"

// UnreadCountTTL bounds staleness of the cached unread count; writes also
// invalidate the key explicitly.
const UnreadCountTTL = 5 * time.Minute

// SessionTokenTTL is the lifetime of issued session tokens.
const SessionTokenTTL = 30 * 24 * time.Hour

// EmailVerifyTokenTTL is the lifetime of email verification tokens.
const EmailVerifyTokenTTL = 24 * time.Hour
