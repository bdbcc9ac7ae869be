package sanitize

// RemoveBlanks deletes empty-string fields from every object nested one level
// below the top of body, e.g. {"project": {"user2": ""}} loses "user2".
// Top-level scalars and deeper levels are left untouched.
func RemoveBlanks(body map[string]any) {
	for _, value := range body {
		obj, ok := value.(map[string]any)
		if !ok {
			continue
		}
		for key, field := range obj {
			if s, ok := field.(string); ok && s == "" {
				delete(obj, key)
			}
		}
	}
}
