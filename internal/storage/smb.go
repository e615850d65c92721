//go:build !nosmb

package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	smb2 "github.com/hirochachacha/go-smb2"

	"github.com/tourdrop/tourdrop/internal/fault"
	"github.com/tourdrop/tourdrop/internal/gpx"
)

func init() {
	Register(KindSMB, writeSMB)
}

// NT status codes go-smb2 surfaces in ResponseError.
const (
	statusLogonFailure        = 0xC000006D
	statusBadNetworkName      = 0xC00000CC
	statusObjectNameCollision = 0xC0000035
)

const smbDialTimeout = 10 * time.Second

// writeSMB writes tracks onto an SMB share via a connection/session/tree
// handshake. Directories are created component by component, tolerating
// ones that already exist; files are create-overwrite-then-close.
func writeSMB(ctx context.Context, dest Destination, tracks []Track, folder string) error {
	cfg := dest.SMB
	if cfg.Server == "" || cfg.Share == "" || cfg.Username == "" || cfg.Password == "" {
		return fault.WithDetail(fault.ConfigIncomplete, "server, share, username, and password are required")
	}

	addr := cfg.Server
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(cfg.Server, "445")
	}
	conn, err := net.DialTimeout("tcp", addr, smbDialTimeout)
	if err != nil {
		return fault.WithDetail(fault.ShareConnectionFailed, cfg.Server)
	}
	defer conn.Close()

	dialer := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     cfg.Username,
			Password: cfg.Password,
		},
	}
	session, err := dialer.DialContext(ctx, conn)
	if err != nil {
		if isNTStatus(err, statusLogonFailure) {
			return fault.New(fault.ShareAuthFailed)
		}
		return fault.WithDetail(fault.ShareAuthFailed, err.Error())
	}
	defer session.Logoff()

	share, err := session.Mount(cfg.Share)
	if err != nil {
		if isNTStatus(err, statusBadNetworkName) {
			return fault.WithDetail(fault.ShareNotFound, cfg.Share)
		}
		return fault.WithDetail(fault.ShareNotFound, err.Error())
	}
	defer share.Umount()

	targetPath := strings.Trim(strings.ReplaceAll(cfg.Path, "\\", "/"), "/")
	if folder != "" {
		if targetPath != "" {
			targetPath = targetPath + "/" + folder
		} else {
			targetPath = folder
		}
	}

	if targetPath != "" {
		if err := smbMakedirs(share, targetPath); err != nil {
			return err
		}
	}

	for _, track := range tracks {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := gpx.SafeFileName(track.Name) + ".gpx"
		filePath := name
		if targetPath != "" {
			filePath = targetPath + "/" + name
		}
		if err := smbWriteFile(share, filePath, []byte(track.GPX)); err != nil {
			return err
		}
	}
	return nil
}

// smbMakedirs creates each path component in turn so a partially existing
// tree is not an error.
func smbMakedirs(share *smb2.Share, path string) error {
	var current string
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		if current == "" {
			current = part
		} else {
			current = current + "/" + part
		}
		err := share.Mkdir(current, 0o755)
		if err != nil && !errors.Is(err, os.ErrExist) && !isNTStatus(err, statusObjectNameCollision) {
			return fault.WithDetail(fault.ShareConnectionFailed, fmt.Sprintf("mkdir %s: %v", current, err))
		}
	}
	return nil
}

func smbWriteFile(share *smb2.Share, path string, data []byte) error {
	f, err := share.Create(path)
	if err != nil {
		return fault.WithDetail(fault.ShareConnectionFailed, fmt.Sprintf("create %s: %v", path, err))
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return fault.WithDetail(fault.ShareConnectionFailed, fmt.Sprintf("write %s: %v", path, werr))
	}
	if cerr != nil {
		return fault.WithDetail(fault.ShareConnectionFailed, fmt.Sprintf("close %s: %v", path, cerr))
	}
	return nil
}

func isNTStatus(err error, code uint32) bool {
	var respErr *smb2.ResponseError
	if errors.As(err, &respErr) {
		return respErr.Code == code
	}
	return false
}
