package infra_test

import (
	"errors"
	"testing"

	"boardinghouse/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind []infra.RepositoryErrorKind
		want infra.RepositoryErrorKind
	}{
		{"no rows", pgx.ErrNoRows, nil, infra.KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, nil, infra.KindDuplicateKey},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, nil, infra.KindForeignKeyViolated},
		{"anything else", errors.New("connection reset"), nil, infra.KindDBFailure},
		{"explicit kind wins", errors.New("boom"), []infra.RepositoryErrorKind{infra.KindNotFound}, infra.KindNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := infra.WrapRepoErr("load booking", c.err, c.kind...)
			assert.True(t, infra.IsKind(err, c.want))
			assert.Contains(t, err.Error(), "load booking")
		})
	}

	assert.True(t, infra.IsKind(infra.NotFound("room"), infra.KindNotFound))
	assert.False(t, infra.IsKind(errors.New("plain"), infra.KindNotFound))
}
