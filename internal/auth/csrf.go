package auth

const (
	// CSRFHeaderName is the request header carrying the CSRF token
	CSRFHeaderName = "csrf-token"

	// csrfTokenBytes is the entropy of an issued CSRF token
	csrfTokenBytes = 32
)

// IssueCSRFToken creates a fresh single-use token for the session,
// replacing any previously issued one. Clients must echo it in the
// csrf-token header of their next mutating request and re-fetch after
// every attempt, successful or not.
func (s *Service) IssueCSRFToken(sessionID string) (string, error) {
	token, err := generateToken(csrfTokenBytes)
	if err != nil {
		return "", err
	}
	if err := s.csrf.Replace(token, sessionID); err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeCSRFToken spends a token for the session. It succeeds at most
// once per issued token; a second attempt with the same token, or any
// attempt under a different session, reports false.
func (s *Service) ConsumeCSRFToken(token, sessionID string) (bool, error) {
	return s.csrf.Consume(token, sessionID)
}
