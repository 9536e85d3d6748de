//go:build !windows

package credentials

// ReadFromStore leaves the credentials untouched; there is no store support on
// this platform and callers fall back to the configuration file.
func (this *Credentials) ReadFromStore() (supported bool, err error) {
	return false, nil
}

func (this *Credentials) WriteToStore() (supported bool, err error) {
	return false, nil
}
