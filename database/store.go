package database

import (
	"container/list"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/ccoincore/cnode/cnerrors"
)

// indexFileVersion is the leading byte of blockindexes.dat, present so a
// future incompatible layout change can be detected at open.
const indexFileVersion = 1

const itemsFileName = "blocks.dat"
const indexFileName = "blockindexes.dat"

// Store is the paged, append-only block store (C1). It is not safe for
// concurrent use from multiple goroutines without external synchronization
// — per spec §5, the blockchain engine serializes every access to it
// behind its own lock.
type Store struct {
	itemsFile *os.File
	indexFile *os.File

	sizes   []uint32 // per-entry serialized size, index == height
	offsets []uint64 // cumulative byte offset of entry i within itemsFile

	poolSize int
	cache    map[uint64]*list.Element
	lru      *list.List // front = most recently used
}

type cacheEntry struct {
	height uint64
	entry  *BlockEntry
}

// Open opens (creating if necessary) the paged block store rooted at
// dataDir, validating index/items consistency. poolSize bounds the number
// of decoded BlockEntry values kept in the LRU cache.
func Open(dataDir string, poolSize int) (*Store, error) {
	if poolSize < 1 {
		poolSize = 1
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, cnerrors.Wrap(cnerrors.StorageIoError, err, "database: mkdir %s", dataDir)
	}

	itemsFile, err := os.OpenFile(filepath.Join(dataDir, itemsFileName), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, cnerrors.Wrap(cnerrors.StorageIoError, err, "database: open %s", itemsFileName)
	}
	indexFile, err := os.OpenFile(filepath.Join(dataDir, indexFileName), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		itemsFile.Close()
		return nil, cnerrors.Wrap(cnerrors.StorageIoError, err, "database: open %s", indexFileName)
	}

	s := &Store{
		itemsFile: itemsFile,
		indexFile: indexFile,
		poolSize:  poolSize,
		cache:     make(map[uint64]*list.Element),
		lru:       list.New(),
	}

	if err := s.loadIndex(); err != nil {
		itemsFile.Close()
		indexFile.Close()
		return nil, err
	}
	if err := s.validateAgainstItemsFile(); err != nil {
		itemsFile.Close()
		indexFile.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) loadIndex() error {
	info, err := s.indexFile.Stat()
	if err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "database: stat index file")
	}
	if info.Size() == 0 {
		return s.rewriteIndexHeader()
	}

	buf := make([]byte, info.Size())
	if _, err := s.indexFile.ReadAt(buf, 0); err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "database: read index file")
	}
	if len(buf) < 1+8 {
		return cnerrors.New(cnerrors.StorageCorrupt, "database: index file too short")
	}
	if buf[0] != indexFileVersion {
		return cnerrors.New(cnerrors.StorageCorrupt, "database: unsupported index file version %d", buf[0])
	}
	count := binary.LittleEndian.Uint64(buf[1:9])
	wantLen := 1 + 8 + count*4
	if uint64(len(buf)) != wantLen {
		return cnerrors.New(cnerrors.StorageCorrupt,
			"database: index file length %d inconsistent with count %d", len(buf), count)
	}

	s.sizes = make([]uint32, count)
	s.offsets = make([]uint64, count)
	var offset uint64
	for i := uint64(0); i < count; i++ {
		sz := binary.LittleEndian.Uint32(buf[9+i*4 : 9+i*4+4])
		s.sizes[i] = sz
		s.offsets[i] = offset
		offset += uint64(sz)
	}
	return nil
}

func (s *Store) validateAgainstItemsFile() error {
	info, err := s.itemsFile.Stat()
	if err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "database: stat items file")
	}
	var total uint64
	for _, sz := range s.sizes {
		total += uint64(sz)
	}
	if total > uint64(info.Size()) {
		return cnerrors.New(cnerrors.StorageCorrupt,
			"database: index claims %d bytes but items file is only %d", total, info.Size())
	}
	return nil
}

func (s *Store) rewriteIndexHeader() error {
	var hdr [9]byte
	hdr[0] = indexFileVersion
	binary.LittleEndian.PutUint64(hdr[1:9], uint64(len(s.sizes)))
	if _, err := s.indexFile.WriteAt(hdr[:], 0); err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "database: write index header")
	}
	return nil
}

// Size returns the number of entries in the store.
func (s *Store) Size() uint64 { return uint64(len(s.sizes)) }

// Empty reports whether the store has no entries.
func (s *Store) Empty() bool { return len(s.sizes) == 0 }

// PushBack serializes e, appends it to the items file at the current tail,
// appends its size to the index file, and bumps the entry count. The index
// file write is the commit point; a crash between the items-file write and
// the index-file write leaves an unused dangling tail in the items file,
// reclaimed on the next PushBack.
func (s *Store) PushBack(e *BlockEntry) (uint64, error) {
	data, err := e.Bytes()
	if err != nil {
		return 0, err
	}

	height := uint64(len(s.sizes))
	var tailOffset uint64
	if height > 0 {
		tailOffset = s.offsets[height-1] + uint64(s.sizes[height-1])
	}
	if _, err := s.itemsFile.WriteAt(data, int64(tailOffset)); err != nil {
		return 0, cnerrors.Wrap(cnerrors.StorageIoError, err, "database: write block entry")
	}
	if err := s.itemsFile.Sync(); err != nil {
		return 0, cnerrors.Wrap(cnerrors.StorageIoError, err, "database: sync items file")
	}

	s.sizes = append(s.sizes, uint32(len(data)))
	s.offsets = append(s.offsets, tailOffset)

	if err := s.appendIndexRecord(uint32(len(data))); err != nil {
		// Roll back the in-memory append so the on-disk index and our
		// view of it stay consistent; the dangling items-file tail is
		// harmless and will be overwritten by the next successful push.
		s.sizes = s.sizes[:len(s.sizes)-1]
		s.offsets = s.offsets[:len(s.offsets)-1]
		return 0, err
	}

	s.putCache(height, e)
	return height, nil
}

func (s *Store) appendIndexRecord(size uint32) error {
	count := uint64(len(s.sizes))
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], size)
	recordOffset := int64(9 + (count-1)*4)
	if _, err := s.indexFile.WriteAt(buf[:], recordOffset); err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "database: write index record")
	}
	if err := s.rewriteIndexHeader(); err != nil {
		return err
	}
	return s.indexFile.Sync()
}

// PopBack logically truncates the store by one entry: the index count is
// decremented and the cache slot invalidated. The items file itself is not
// truncated (its tail becomes unused space, reclaimed by the next push),
// matching the reference BlockAccessor's pop_back commit-point semantics.
func (s *Store) PopBack() (*BlockEntry, error) {
	if s.Empty() {
		return nil, cnerrors.New(cnerrors.InternalInconsistency, "database: pop_back on empty store")
	}
	height := uint64(len(s.sizes)) - 1
	entry, err := s.At(height)
	if err != nil {
		return nil, err
	}

	s.sizes = s.sizes[:height]
	s.offsets = s.offsets[:height]
	if err := s.rewriteIndexHeader(); err != nil {
		return nil, err
	}
	if err := s.indexFile.Truncate(int64(9 + height*4)); err != nil {
		return nil, cnerrors.Wrap(cnerrors.StorageIoError, err, "database: truncate index file")
	}
	if err := s.indexFile.Sync(); err != nil {
		return nil, cnerrors.Wrap(cnerrors.StorageIoError, err, "database: sync index file")
	}

	s.evictCache(height)
	return entry, nil
}

// At returns the decoded entry at height, serving from the LRU cache on
// hit and decoding from disk on miss.
func (s *Store) At(height uint64) (*BlockEntry, error) {
	if height >= uint64(len(s.sizes)) {
		return nil, cnerrors.New(cnerrors.InternalInconsistency, "database: index %d out of range (size %d)", height, len(s.sizes))
	}
	if elem, ok := s.cache[height]; ok {
		s.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry).entry, nil
	}

	buf := make([]byte, s.sizes[height])
	if _, err := s.itemsFile.ReadAt(buf, int64(s.offsets[height])); err != nil {
		return nil, cnerrors.Wrap(cnerrors.StorageIoError, err, "database: read entry %d", height)
	}
	entry, err := DecodeBlockEntry(buf)
	if err != nil {
		return nil, cnerrors.Wrap(cnerrors.StorageCorrupt, err, "database: decode entry %d", height)
	}
	s.putCache(height, entry)
	return entry, nil
}

// Front returns the entry at height 0.
func (s *Store) Front() (*BlockEntry, error) {
	return s.At(0)
}

// Back returns the entry at the highest height.
func (s *Store) Back() (*BlockEntry, error) {
	if s.Empty() {
		return nil, cnerrors.New(cnerrors.InternalInconsistency, "database: back() on empty store")
	}
	return s.At(uint64(len(s.sizes)) - 1)
}

func (s *Store) putCache(height uint64, entry *BlockEntry) {
	if elem, ok := s.cache[height]; ok {
		elem.Value.(*cacheEntry).entry = entry
		s.lru.MoveToFront(elem)
		return
	}
	elem := s.lru.PushFront(&cacheEntry{height: height, entry: entry})
	s.cache[height] = elem
	for len(s.cache) > s.poolSize {
		victim := s.lru.Back()
		if victim == nil {
			break
		}
		s.lru.Remove(victim)
		delete(s.cache, victim.Value.(*cacheEntry).height)
	}
}

func (s *Store) evictCache(height uint64) {
	if elem, ok := s.cache[height]; ok {
		s.lru.Remove(elem)
		delete(s.cache, height)
	}
}

// Close releases the store's file handles.
func (s *Store) Close() error {
	err1 := s.itemsFile.Close()
	err2 := s.indexFile.Close()
	if err1 != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err1, "database: close items file")
	}
	if err2 != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err2, "database: close index file")
	}
	return nil
}
