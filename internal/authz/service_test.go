package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mallhub-next/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceUserWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("shopper", "/orders/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetUserRoles(1, []string{"shopper"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "/api/v1/orders/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceUser(1, "/api/v1/orders/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetUserRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("shopper", "/orders", "GET"); err != nil {
		t.Fatalf("grant shopper policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("seller", "/tenant/orders", "GET"); err != nil {
		t.Fatalf("grant seller policy failed: %v", err)
	}

	if err := svc.SetUserRoles(2, []string{"shopper"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:shopper" {
		t.Fatalf("roles want [role:shopper], got=%v", roles)
	}

	if err := svc.SetUserRoles(2, []string{"seller"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:seller" {
		t.Fatalf("roles want [role:seller], got=%v", roles)
	}

	allow, err := svc.EnforceUser(2, "/orders", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceUser(2, "/tenant/orders", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:customer": true,
		"role:tenant":   true,
		"role:admin":    true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	if err := svc.SetUserRoles(3, []string{constants.RoleCustomer}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	// 顾客只读订单，状态流转只开放给商户与管理员
	cases := []struct {
		object string
		action string
		allow  bool
	}{
		{object: "/api/v1/orders", action: "GET", allow: true},
		{object: "/api/v1/orders/:id", action: "GET", allow: true},
		{object: "/api/v1/orders/:id/status", action: "PATCH", allow: false},
		{object: "/api/v1/loyalty", action: "GET", allow: true},
		{object: "/api/v1/loyalty", action: "DELETE", allow: false},
		{object: "/api/v1/tenant/products", action: "GET", allow: false},
		{object: "/api/v1/admin/overview", action: "GET", allow: false},
	}
	for _, item := range cases {
		allow, err := svc.EnforceUser(3, item.object, item.action)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", item.action, item.object, err)
		}
		if allow != item.allow {
			t.Fatalf("enforce %s %s want %v got %v", item.action, item.object, item.allow, allow)
		}
	}

	if err := svc.SetUserRoles(4, []string{constants.RoleTenant}); err != nil {
		t.Fatalf("set tenant roles failed: %v", err)
	}
	allow, err := svc.EnforceUser(4, "/api/v1/tenant/orders/7/status", "PATCH")
	if err != nil {
		t.Fatalf("enforce tenant nested path failed: %v", err)
	}
	if !allow {
		t.Fatalf("tenant wildcard should cover nested paths")
	}
}
