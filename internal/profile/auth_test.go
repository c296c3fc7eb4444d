package profile

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	InitAuth("test-secret", 1)

	token, err := GenerateToken("uuid-1")
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.UserID != "uuid-1" {
		t.Fatalf("令牌应携带用户ID，得到 %q", claims.UserID)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	InitAuth("test-secret", 1)

	token, _ := GenerateToken("uuid-1")

	// 破坏签名部分
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]
	if _, err := ParseToken(tampered); err == nil {
		t.Fatalf("签名被篡改的令牌必须被拒绝")
	}

	// 换了密钥之后旧令牌失效
	InitAuth("other-secret", 1)
	if _, err := ParseToken(token); err == nil {
		t.Fatalf("用错误密钥签发的令牌必须被拒绝")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("tajne-hasło")
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	if hash == "tajne-hasło" {
		t.Fatalf("密码不能以明文存储")
	}
	if !checkPassword("tajne-hasło", hash) {
		t.Fatalf("正确密码应通过校验")
	}
	if checkPassword("złe-hasło", hash) {
		t.Fatalf("错误密码不应通过校验")
	}
}
