package profile

// 权限规则与托管端的行级策略保持一致：
// 基础种子数据（ownerID为空）只有管理员能改；用户自有数据本人或管理员能改。

// CanEdit 判断访问者是否可以编辑指定条目。
// 仅当已认证且（是管理员，或是条目的创建者）时为真；未认证一律为假。
func CanEdit(recordOwnerID string, user Identity) bool {
	if !user.Authenticated {
		return false
	}
	if user.IsAdmin {
		return true
	}
	return recordOwnerID != "" && recordOwnerID == user.ID
}

// CanDelete 与CanEdit使用同一条规则
func CanDelete(recordOwnerID string, user Identity) bool {
	return CanEdit(recordOwnerID, user)
}
