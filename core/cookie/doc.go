// Package cookie encodes and decodes the Cookie and Set-Cookie header formats
// and signs cookie values.
//
// Parse turns an incoming Cookie header into a map (first occurrence wins);
// Serialize produces one Set-Cookie value with validated attributes and a 4KB
// size limit. Signer adds an HMAC-SHA256 signature with key rotation support:
//
//	signer, err := cookie.NewSigner([]string{"a-secret-of-at-least-32-characters"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	header, err := cookie.Serialize("yjs", signer.Sign(sessionID),
//		cookie.Apply(cookie.DefaultOptions(), cookie.WithMaxAge(7200)))
//
//	id, err := signer.Verify(cookie.Parse(r.Header.Get("Cookie"))["yjs"])
//	if errors.Is(err, cookie.ErrInvalidSignature) {
//		// Tampered cookie
//	}
//
// Config loads the default attributes and comma-separated secrets from the
// environment (COOKIE_SECRETS, COOKIE_PATH, COOKIE_DOMAIN, COOKIE_MAX_AGE,
// COOKIE_SECURE, COOKIE_HTTP_ONLY, COOKIE_SAME_SITE).
package cookie
