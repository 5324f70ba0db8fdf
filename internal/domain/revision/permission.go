package revision

import "fmt"

func RevertAllPermission(typeID string) string {
	return fmt.Sprintf("revert all %s revisions", typeID)
}

func RevertBundlePermission(bundle, typeID string) string {
	return fmt.Sprintf("revert %s %s revisions", bundle, typeID)
}

func DeleteAllPermission(typeID string) string {
	return fmt.Sprintf("delete all %s revisions", typeID)
}
