package state

// Authenticate compares password with the admin password of the current
// settings.
//
// The comparison is a plain string equality: this is a convenience login for
// the content editor, not a security boundary.
func (s *Store) Authenticate(password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.matches(password)
}

// Login sets the authenticated flag when password matches.
func (s *Store) Login(password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.matches(password) {
		return false
	}

	s.authenticated = true

	return true
}

// Logout clears the authenticated flag.
func (s *Store) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()
}

// IsAuthenticated reports the authenticated flag.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.authenticated
}

func (s *Store) matches(password string) bool {
	return password == s.state.Settings.AdminPassword
}
