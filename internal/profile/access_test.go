package profile

import "testing"

func TestCanEditUnauthenticated(t *testing.T) {
	anonymous := Identity{}
	if CanEdit("", anonymous) {
		t.Fatalf("未认证访问者不能编辑基础数据")
	}
	if CanEdit("uuid-1", anonymous) {
		t.Fatalf("未认证访问者不能编辑用户数据")
	}
}

func TestCanEditAdmin(t *testing.T) {
	admin := Identity{ID: "uuid-admin", IsAdmin: true, Authenticated: true}
	if !CanEdit("", admin) {
		t.Fatalf("管理员可以编辑基础种子数据")
	}
	if !CanEdit("uuid-other", admin) {
		t.Fatalf("管理员可以编辑任何用户的数据")
	}
}

func TestCanEditOwner(t *testing.T) {
	owner := Identity{ID: "uuid-1", Authenticated: true}
	if !CanEdit("uuid-1", owner) {
		t.Fatalf("创建者可以编辑自己的条目")
	}
	if CanEdit("uuid-2", owner) {
		t.Fatalf("普通用户不能编辑别人的条目")
	}
	if CanEdit("", owner) {
		t.Fatalf("普通用户不能编辑基础种子数据")
	}
}

func TestCanDeleteMirrorsCanEdit(t *testing.T) {
	cases := []struct {
		ownerID string
		user    Identity
	}{
		{"", Identity{}},
		{"uuid-1", Identity{ID: "uuid-1", Authenticated: true}},
		{"uuid-1", Identity{ID: "uuid-2", Authenticated: true}},
		{"", Identity{ID: "uuid-admin", IsAdmin: true, Authenticated: true}},
	}
	for _, c := range cases {
		if CanDelete(c.ownerID, c.user) != CanEdit(c.ownerID, c.user) {
			t.Fatalf("删除权限必须与编辑权限一致: owner=%q user=%+v", c.ownerID, c.user)
		}
	}
}
