package summary

import "sort"

// Group 以会话记录为父节点的分组
type Group struct {
	Parent   *Record
	Children []*Record // 按 dateCreated 升序
}

// SharedGroup 没有会话父节点、共享同一分组键的兄弟记录
type SharedGroup struct {
	Key     string
	Members []*Record // 按 dateCreated 升序
}

// Earliest 返回组内最早的记录
func (g SharedGroup) Earliest() *Record {
	if len(g.Members) == 0 {
		return nil
	}
	return g.Members[0]
}

// Counts 按类型统计
type Counts struct {
	Total        int
	Agent        int
	VirtualAgent int
	Conversation int
}

// Partition 分组结果
// 每条输入记录恰好出现在一个位置
type Partition struct {
	Groups       []Group
	SharedGroups []SharedGroup
	Standalones  []*Record
	Counts       Counts
}

// Classify 将记录划分为分组、共享组和独立记录
// 纯函数：结果只取决于输入，不缓存、不持久化。
// 同一分组键下存在多个会话记录时，输入顺序中的第一个作为父节点，其余视为普通子记录。
func Classify(records []*Record) *Partition {
	p := &Partition{
		Groups:       []Group{},
		SharedGroups: []SharedGroup{},
		Standalones:  []*Record{},
		Counts:       countByType(records),
	}

	buckets := make(map[string][]*Record)
	var keys []string
	for _, r := range records {
		if r == nil {
			continue
		}
		key := r.GroupingKey()
		if key == "" {
			p.Standalones = append(p.Standalones, r)
			continue
		}
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], r)
	}

	for _, key := range keys {
		members := buckets[key]

		parentIdx := electParentIndex(members)

		if parentIdx >= 0 {
			children := make([]*Record, 0, len(members)-1)
			children = append(children, members[:parentIdx]...)
			children = append(children, members[parentIdx+1:]...)
			sortAsc(children)
			p.Groups = append(p.Groups, Group{Parent: members[parentIdx], Children: children})
			continue
		}

		if len(members) > 1 {
			shared := append([]*Record(nil), members...)
			sortAsc(shared)
			p.SharedGroups = append(p.SharedGroups, SharedGroup{Key: key, Members: shared})
			continue
		}

		p.Standalones = append(p.Standalones, members[0])
	}

	sort.SliceStable(p.Groups, func(i, j int) bool {
		return newer(p.Groups[i].Parent, p.Groups[j].Parent)
	})
	sort.SliceStable(p.SharedGroups, func(i, j int) bool {
		return newer(p.SharedGroups[i].Earliest(), p.SharedGroups[j].Earliest())
	})
	sort.SliceStable(p.Standalones, func(i, j int) bool {
		return newer(p.Standalones[i], p.Standalones[j])
	})

	return p
}

// ElectParent 在同一分组键的记录中选出父节点：按给定顺序的第一个会话记录
// 没有会话记录时返回 nil
func ElectParent(members []*Record) *Record {
	if i := electParentIndex(members); i >= 0 {
		return members[i]
	}
	return nil
}

func electParentIndex(members []*Record) int {
	for i, r := range members {
		if r != nil && r.IsConversation() {
			return i
		}
	}
	return -1
}

// sortAsc 按 dateCreated 升序，时间相同按 ID 升序
func sortAsc(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return older(records[i], records[j])
	})
}

func older(a, b *Record) bool {
	if !a.DateCreated.Equal(b.DateCreated) {
		return a.DateCreated.Before(b.DateCreated)
	}
	return a.ID < b.ID
}

func newer(a, b *Record) bool {
	if !a.DateCreated.Equal(b.DateCreated) {
		return a.DateCreated.After(b.DateCreated)
	}
	return a.ID > b.ID
}

func countByType(records []*Record) Counts {
	var c Counts
	for _, r := range records {
		if r == nil {
			continue
		}
		c.Total++
		switch r.SummaryType {
		case TypeAgent:
			c.Agent++
		case TypeVirtualAgent:
			c.VirtualAgent++
		case TypeConversation:
			c.Conversation++
		}
	}
	return c
}
